package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/pkg/ai"
)

type scriptedCounsellor struct {
	reply ai.Reply
	err   error

	lastInput ai.PromptInput
}

func (s *scriptedCounsellor) Advise(_ context.Context, input ai.PromptInput) (ai.Reply, error) {
	s.lastInput = input
	return s.reply, s.err
}

func setupChatService(t *testing.T, primary, offline ai.Counsellor) (*gorm.DB, ChatService) {
	t.Helper()

	db := openTestDB(t, "chat_service")
	validate := newValidator()
	logger := zerolog.Nop()

	profiles := repository.NewProfileRepository(db)
	users := repository.NewUserRepository(db)
	entries := repository.NewShortlistRepository(db)
	universities := repository.NewUniversityRepository(db)
	tasks := repository.NewTaskRepository(db)

	taskSvc := NewTaskService(tasks, nil, validate, logger)
	shortlistSvc := NewShortlistService(entries, universities, nil, validate, logger)
	profileSvc := NewProfileService(profiles, users, tasks, nil, validate, logger)
	searchSvc := NewExternalSearchService(&stubDirectory{}, universities, logger)

	svc := NewChatService(ChatDeps{
		Messages:     repository.NewChatRepository(db),
		Profiles:     profiles,
		Entries:      entries,
		Universities: universities,
		Tasks:        taskSvc,
		Shortlist:    shortlistSvc,
		Profile:      profileSvc,
		Search:       searchSvc,
		Counsellor:   primary,
		Offline:      offline,
		Classifier:   match.NewClassifier(nil),
	}, validate, logger)
	return db, svc
}

func TestChatPersistsBothTurns(t *testing.T) {
	primary := &scriptedCounsellor{reply: ai.Reply{Message: "Focus on your SOP next."}}
	db, svc := setupChatService(t, primary, ai.NewOfflineCounsellor(zerolog.Nop()))
	user := createTestUser(t, db, "amina@example.com")

	response, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "What should I do next?"})
	require.NoError(t, err)
	require.Equal(t, "Focus on your SOP next.", response.Message)
	require.False(t, response.Fallback)

	history, err := svc.History(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.ChatRoleUser, history[0].Role)
	require.Equal(t, "What should I do next?", history[0].Content)
	require.Equal(t, models.ChatRoleAssistant, history[1].Role)
}

func TestChatSanitizesInput(t *testing.T) {
	primary := &scriptedCounsellor{reply: ai.Reply{Message: "Noted."}}
	db, svc := setupChatService(t, primary, ai.NewOfflineCounsellor(zerolog.Nop()))
	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "<b>Hello</b> counsellor"})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Equal(t, "Hello counsellor", history[0].Content)
}

func TestChatIncludesStudentContext(t *testing.T) {
	primary := &scriptedCounsellor{reply: ai.Reply{Message: "Noted."}}
	db, svc := setupChatService(t, primary, ai.NewOfflineCounsellor(zerolog.Nop()))
	user := createTestUser(t, db, "amina@example.com")

	profile := models.Profile{
		UserID: user.ID, Degree: "BSc", Major: "Computer Science", GraduationYear: 2025,
		GPA: floatPtr(3.8), IntendedDegree: "MSc", FieldOfStudy: "AI", TargetIntakeYear: 2027,
		PreferredCountries: "United States",
	}
	require.NoError(t, db.Create(&profile).Error)

	_, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "Where do I stand?"})
	require.NoError(t, err)
	require.Contains(t, primary.lastInput.StudentContext, "Computer Science")
	require.Contains(t, primary.lastInput.StudentContext, "3.80")
}

func TestChatFallsBackWhenProviderFails(t *testing.T) {
	primary := &scriptedCounsellor{err: errors.New("provider down")}
	db, svc := setupChatService(t, primary, ai.NewOfflineCounsellor(zerolog.Nop()))
	user := createTestUser(t, db, "amina@example.com")

	response, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "What should I do next?"})
	require.NoError(t, err)
	require.True(t, response.Fallback)
	require.NotEmpty(t, response.Message)
}

func TestChatRollsBackUserTurnWhenBothFail(t *testing.T) {
	primary := &scriptedCounsellor{err: errors.New("provider down")}
	offline := &scriptedCounsellor{err: errors.New("also down")}
	db, svc := setupChatService(t, primary, offline)
	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "Anyone there?"})
	require.Error(t, err)

	history, err := svc.History(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestChatExecutesCreateTaskAction(t *testing.T) {
	primary := &scriptedCounsellor{reply: ai.Reply{
		Message: "I've added that to your checklist.",
		Actions: []ai.Action{{
			Name:   ai.ActionCreateTask,
			Params: map[string]interface{}{"title": "Request transcripts", "priority": float64(3)},
		}},
	}}
	db, svc := setupChatService(t, primary, ai.NewOfflineCounsellor(zerolog.Nop()))
	user := createTestUser(t, db, "amina@example.com")

	response, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "Please add a task for transcripts."})
	require.NoError(t, err)
	require.Len(t, response.ActionResults, 1)
	require.Equal(t, dto.ActionResultTaskCreated, response.ActionResults[0].Kind)

	var tasks []models.Task
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&tasks).Error)
	require.Len(t, tasks, 1)
	require.Equal(t, "Request transcripts", tasks[0].Title)
	require.Equal(t, 3, tasks[0].Priority)
}

// brokenSecondSaveRepo fails the assistant-turn save while letting the
// user turn through, so rollback behavior can be observed.
type brokenSecondSaveRepo struct {
	repository.ChatRepository
	saves int
}

func (r *brokenSecondSaveRepo) Save(ctx context.Context, message *models.ChatMessage) error {
	r.saves++
	if r.saves == 2 {
		return errors.New("storage unavailable")
	}
	return r.ChatRepository.Save(ctx, message)
}

func TestChatAssistantSaveFailureRunsNoActions(t *testing.T) {
	primary := &scriptedCounsellor{reply: ai.Reply{
		Message: "I've added that to your checklist.",
		Actions: []ai.Action{{
			Name:   ai.ActionCreateTask,
			Params: map[string]interface{}{"title": "Request transcripts"},
		}},
	}}

	db := openTestDB(t, "chat_service")
	validate := newValidator()
	logger := zerolog.Nop()

	profiles := repository.NewProfileRepository(db)
	users := repository.NewUserRepository(db)
	entries := repository.NewShortlistRepository(db)
	universities := repository.NewUniversityRepository(db)
	tasks := repository.NewTaskRepository(db)

	svc := NewChatService(ChatDeps{
		Messages:     &brokenSecondSaveRepo{ChatRepository: repository.NewChatRepository(db)},
		Profiles:     profiles,
		Entries:      entries,
		Universities: universities,
		Tasks:        NewTaskService(tasks, nil, validate, logger),
		Shortlist:    NewShortlistService(entries, universities, nil, validate, logger),
		Profile:      NewProfileService(profiles, users, tasks, nil, validate, logger),
		Search:       NewExternalSearchService(&stubDirectory{}, universities, logger),
		Counsellor:   primary,
		Offline:      primary,
		Classifier:   match.NewClassifier(nil),
	}, validate, logger)

	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "Please add a task for transcripts."})
	require.Error(t, err)

	// No side effects landed and the user turn was rolled back.
	var taskCount int64
	require.NoError(t, db.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&taskCount).Error)
	require.Zero(t, taskCount)

	history, err := svc.History(context.Background(), user.ID, 10)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestChatExecutesShortlistActionWithSnapshot(t *testing.T) {
	university := models.University{Name: "Target U", Country: "United States", MinGPA: floatPtr(3.5)}

	primary := &scriptedCounsellor{}
	db, svc := setupChatService(t, primary, ai.NewOfflineCounsellor(zerolog.Nop()))
	user := createTestUser(t, db, "amina@example.com")
	require.NoError(t, db.Create(&university).Error)

	profile := models.Profile{UserID: user.ID, GPA: floatPtr(3.6)}
	require.NoError(t, db.Create(&profile).Error)

	primary.reply = ai.Reply{
		Message: "Shortlisted it for you.",
		Actions: []ai.Action{{
			Name:   ai.ActionShortlistUniversity,
			Params: map[string]interface{}{"university_id": float64(university.ID)},
		}},
	}

	response, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "Add Target U to my shortlist."})
	require.NoError(t, err)
	require.Len(t, response.ActionResults, 1)
	require.Equal(t, dto.ActionResultShortlisted, response.ActionResults[0].Kind)

	var entries []models.ShortlistEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	// Snapshot computed by the classifier: 3.6 vs 3.5 → 90/TARGET.
	require.Equal(t, 90.0, entries[0].FitScore)
	require.Equal(t, "TARGET", entries[0].RiskLevel)
	require.Equal(t, models.CategoryTarget, entries[0].Category)
}

func TestChatSkipsFailedActions(t *testing.T) {
	primary := &scriptedCounsellor{reply: ai.Reply{
		Message: "Done.",
		Actions: []ai.Action{{
			Name:   ai.ActionDeleteTask,
			Params: map[string]interface{}{"task_id": float64(424242)},
		}},
	}}
	db, svc := setupChatService(t, primary, ai.NewOfflineCounsellor(zerolog.Nop()))
	user := createTestUser(t, db, "amina@example.com")

	response, err := svc.Send(context.Background(), user.ID, dto.ChatRequest{Message: "Remove that task."})
	require.NoError(t, err)
	require.Empty(t, response.ActionResults)
	require.Len(t, response.Actions, 1)
}
