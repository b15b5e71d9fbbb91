package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/pkg/ai"
)

const chatHistoryWindow = 20

// ChatService runs the counsellor conversation: it persists both turns,
// asks the AI provider for a reply, and executes any actions the reply
// requests. A provider failure degrades to the offline counsellor rather
// than surfacing an error.
type ChatService interface {
	Send(ctx context.Context, userID uint, payload dto.ChatRequest) (dto.ChatResponse, error)
	History(ctx context.Context, userID uint, limit int) ([]dto.ChatMessageResponse, error)
}

type chatService struct {
	messages     repository.ChatRepository
	profiles     repository.ProfileRepository
	entries      repository.ShortlistRepository
	universities repository.UniversityRepository
	tasks        TaskService
	shortlist    ShortlistService
	profile      ProfileService
	search       ExternalSearchService
	counsellor   ai.Counsellor
	offline      ai.Counsellor
	classifier   match.Classifier
	sanitizer    *bluemonday.Policy
	validator    *validator.Validate
	logger       zerolog.Logger
}

// ChatDeps bundles the collaborators the chat service drives.
type ChatDeps struct {
	Messages     repository.ChatRepository
	Profiles     repository.ProfileRepository
	Entries      repository.ShortlistRepository
	Universities repository.UniversityRepository
	Tasks        TaskService
	Shortlist    ShortlistService
	Profile      ProfileService
	Search       ExternalSearchService
	Counsellor   ai.Counsellor
	Offline      ai.Counsellor
	Classifier   match.Classifier
}

// NewChatService builds the chat service.
func NewChatService(deps ChatDeps, validate *validator.Validate, logger zerolog.Logger) ChatService {
	return &chatService{
		messages:     deps.Messages,
		profiles:     deps.Profiles,
		entries:      deps.Entries,
		universities: deps.Universities,
		tasks:        deps.Tasks,
		shortlist:    deps.Shortlist,
		profile:      deps.Profile,
		search:       deps.Search,
		counsellor:   deps.Counsellor,
		offline:      deps.Offline,
		classifier:   deps.Classifier,
		sanitizer:    bluemonday.StrictPolicy(),
		validator:    validate,
		logger:       logger.With().Str("component", "chat_service").Logger(),
	}
}

func (s *chatService) History(ctx context.Context, userID uint, limit int) ([]dto.ChatMessageResponse, error) {
	messages, err := s.messages.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewChatMessageResponseSlice(messages), nil
}

func (s *chatService) Send(ctx context.Context, userID uint, payload dto.ChatRequest) (dto.ChatResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Message))
	if content == "" {
		return dto.ChatResponse{}, fmt.Errorf("message is empty after sanitization")
	}

	history, err := s.messages.ListByUser(ctx, userID, chatHistoryWindow)
	if err != nil {
		return dto.ChatResponse{}, err
	}

	userTurn := models.ChatMessage{UserID: userID, Role: models.ChatRoleUser, Content: content}
	if err := s.messages.Save(ctx, &userTurn); err != nil {
		return dto.ChatResponse{}, err
	}

	input := ai.PromptInput{
		StudentContext: s.studentContext(ctx, userID),
		History:        promptHistory(history),
		Message:        content,
	}

	reply, err := s.counsellor.Advise(ctx, input)
	if err != nil {
		s.logger.Warn().Err(err).Msg("counsellor unavailable, using offline fallback")
		reply, err = s.offline.Advise(ctx, input)
		if err != nil {
			// Roll back the optimistic user turn so history stays
			// consistent with what the user actually saw.
			if delErr := s.messages.Delete(ctx, userTurn.ID); delErr != nil {
				s.logger.Error().Err(delErr).Msg("failed to roll back user turn")
			}
			return dto.ChatResponse{}, err
		}
	}

	// Persist the assistant turn before running its actions: if this save
	// fails no side effects have landed yet, and the user turn can still
	// be rolled back to keep history consistent.
	assistantTurn := models.ChatMessage{UserID: userID, Role: models.ChatRoleAssistant, Content: reply.Message}
	if err := s.messages.Save(ctx, &assistantTurn); err != nil {
		if delErr := s.messages.Delete(ctx, userTurn.ID); delErr != nil {
			s.logger.Error().Err(delErr).Msg("failed to roll back user turn")
		}
		return dto.ChatResponse{}, err
	}

	results := s.executeActions(ctx, userID, reply.Actions)

	return dto.ChatResponse{
		Message:       reply.Message,
		Actions:       actionMaps(reply.Actions),
		ActionResults: results,
		Fallback:      reply.Fallback,
	}, nil
}

// studentContext renders the profile, shortlist, and top catalog matches
// into the text block the counsellor model is primed with. Lookups are
// best effort; an incomplete context is better than no answer.
func (s *chatService) studentContext(ctx context.Context, userID uint) string {
	var b strings.Builder

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("failed to load profile for chat context")
		}
		b.WriteString("The student has not completed their profile yet.\n")
		return b.String()
	}

	b.WriteString("Student profile:\n")
	fmt.Fprintf(&b, "- Background: %s in %s, graduating %d\n", profile.Degree, profile.Major, profile.GraduationYear)
	if profile.GPA != nil {
		fmt.Fprintf(&b, "- GPA: %.2f on a 4.0 scale (academic strength: %s)\n", *profile.GPA, profile.AcademicStrength)
	}
	fmt.Fprintf(&b, "- Goal: %s in %s, intake %d\n", profile.IntendedDegree, profile.FieldOfStudy, profile.TargetIntakeYear)
	fmt.Fprintf(&b, "- Preferred countries: %s\n", profile.PreferredCountries)
	fmt.Fprintf(&b, "- Budget: %.0f-%.0f USD/year (%s)\n", profile.BudgetMin, profile.BudgetMax, profile.FundingPlan)
	fmt.Fprintf(&b, "- Exam strength: %s, SOP: %s (%s)\n", profile.ExamStrength, profile.SOPStatus, profile.SOPStrength)

	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load shortlist for chat context")
		return b.String()
	}
	if len(entries) > 0 {
		b.WriteString("Shortlist:\n")
		for _, entry := range entries {
			line := fmt.Sprintf("- [%d] %s (%s, %s, fit %.0f)", entry.ID, entry.University.Name, entry.Category, entry.RiskLevel, entry.FitScore)
			if entry.IsLocked {
				line += " [LOCKED TARGET]"
			}
			b.WriteString(line + "\n")
		}
	}

	universities, err := s.universities.List(ctx, repository.UniversityFilter{})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load catalog for chat context")
		return b.String()
	}
	if len(universities) > 0 {
		b.WriteString("Top catalog matches:\n")
		count := 0
		for _, university := range universities {
			assessment := s.classifier.Classify(profile, university)
			fmt.Fprintf(&b, "- [%d] %s, %s: fit %d, %s\n", university.ID, university.Name, university.Country, assessment.FitScore, assessment.Risk)
			count++
			if count == 5 {
				break
			}
		}
	}

	return b.String()
}

func (s *chatService) executeActions(ctx context.Context, userID uint, actions []ai.Action) []dto.ActionResult {
	var results []dto.ActionResult
	for _, action := range actions {
		result, err := s.executeAction(ctx, userID, action)
		if err != nil {
			s.logger.Warn().Err(err).Str("action", action.Name).Msg("counsellor action failed")
			continue
		}
		results = append(results, result)
	}
	return results
}

func (s *chatService) executeAction(ctx context.Context, userID uint, action ai.Action) (dto.ActionResult, error) {
	switch action.Name {
	case ai.ActionCreateTask:
		task, err := s.tasks.Create(ctx, userID, dto.TaskCreateRequest{
			Title:       stringParam(action.Params, "title"),
			Description: stringParam(action.Params, "description"),
			Priority:    intParam(action.Params, "priority"),
		})
		if err != nil {
			return dto.ActionResult{}, err
		}
		return dto.ActionResult{
			Kind:   dto.ActionResultTaskCreated,
			Fields: map[string]interface{}{"task_id": task.ID, "title": task.Title},
		}, nil

	case ai.ActionDeleteTask:
		taskID := uintParam(action.Params, "task_id")
		if taskID == 0 {
			return dto.ActionResult{}, fmt.Errorf("missing task_id")
		}
		if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
			return dto.ActionResult{}, err
		}
		return dto.ActionResult{
			Kind:   dto.ActionResultTaskDeleted,
			Fields: map[string]interface{}{"task_id": taskID},
		}, nil

	case ai.ActionShortlistUniversity:
		return s.executeShortlist(ctx, userID, action.Params)

	case ai.ActionLockUniversity:
		shortlistID := uintParam(action.Params, "shortlist_id")
		if shortlistID == 0 {
			return dto.ActionResult{}, fmt.Errorf("missing shortlist_id")
		}
		entry, err := s.shortlist.SetLock(ctx, userID, dto.ShortlistLockRequest{ShortlistID: shortlistID, Lock: true})
		if err != nil {
			return dto.ActionResult{}, err
		}
		return dto.ActionResult{
			Kind:   dto.ActionResultLocked,
			Fields: map[string]interface{}{"shortlist_id": entry.ID, "university": entry.University.Name},
		}, nil

	case ai.ActionUpdateProfile:
		var update dto.ProfileUpdateRequest
		raw, err := json.Marshal(action.Params)
		if err != nil {
			return dto.ActionResult{}, err
		}
		if err := json.Unmarshal(raw, &update); err != nil {
			return dto.ActionResult{}, err
		}
		if _, err := s.profile.Update(ctx, userID, update); err != nil {
			return dto.ActionResult{}, err
		}
		return dto.ActionResult{Kind: dto.ActionResultProfileUpdate, Fields: action.Params}, nil

	case ai.ActionSearchUniversities:
		hits, err := s.search.Search(ctx, stringParam(action.Params, "country"), stringParam(action.Params, "name"), intParam(action.Params, "limit"), 0)
		if err != nil {
			return dto.ActionResult{}, err
		}
		return dto.ActionResult{Kind: dto.ActionResultUniversitySearch, Results: hits}, nil
	}

	return dto.ActionResult{}, fmt.Errorf("unknown action %q", action.Name)
}

// executeShortlist runs the classifier to build the fit snapshot the add
// operation requires, since the model only names the university.
func (s *chatService) executeShortlist(ctx context.Context, userID uint, params map[string]interface{}) (dto.ActionResult, error) {
	universityID := uintParam(params, "university_id")
	if universityID == 0 {
		return dto.ActionResult{}, fmt.Errorf("missing university_id")
	}

	university, err := s.universities.GetByID(ctx, universityID)
	if err != nil {
		return dto.ActionResult{}, err
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return dto.ActionResult{}, err
	}
	assessment := s.classifier.Classify(profile, university)

	category := stringParam(params, "category")
	if category == "" {
		category = string(match.CategoryFor(assessment.Risk))
	}

	entry, err := s.shortlist.Add(ctx, userID, dto.ShortlistAddRequest{
		UniversityID: universityID,
		Category:     category,
		FitScore:     float64(assessment.FitScore),
		RiskLevel:    string(assessment.Risk),
		AIReasoning:  assessment.Reasoning,
	})
	if err != nil {
		return dto.ActionResult{}, err
	}
	return dto.ActionResult{
		Kind:   dto.ActionResultShortlisted,
		Fields: map[string]interface{}{"shortlist_id": entry.ID, "university": university.Name},
	}, nil
}

func promptHistory(messages []models.ChatMessage) []ai.Message {
	history := make([]ai.Message, 0, len(messages))
	for _, message := range messages {
		history = append(history, ai.Message{Role: message.Role, Content: message.Content})
	}
	return history
}

func actionMaps(actions []ai.Action) []map[string]interface{} {
	if len(actions) == 0 {
		return nil
	}
	maps := make([]map[string]interface{}, 0, len(actions))
	for _, action := range actions {
		maps = append(maps, map[string]interface{}{"action": action.Name, "params": action.Params})
	}
	return maps
}

func stringParam(params map[string]interface{}, key string) string {
	if value, ok := params[key].(string); ok {
		return value
	}
	return ""
}

func intParam(params map[string]interface{}, key string) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func uintParam(params map[string]interface{}, key string) uint {
	if v := intParam(params, key); v > 0 {
		return uint(v)
	}
	return 0
}
