package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

func setupProfileService(t *testing.T) (*gorm.DB, ProfileService) {
	t.Helper()

	db := openTestDB(t, "profile_service")
	profiles := repository.NewProfileRepository(db)
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	svc := NewProfileService(profiles, users, tasks, nil, newValidator(), zerolog.Nop())
	return db, svc
}

func onboardingPayload() dto.ProfileCreateRequest {
	return dto.ProfileCreateRequest{
		EducationLevel:     "undergraduate",
		Degree:             "BSc",
		Major:              "Computer Science",
		GraduationYear:     2025,
		GPA:                floatPtr(3.8),
		IntendedDegree:     "MSc",
		FieldOfStudy:       "Artificial Intelligence",
		TargetIntakeYear:   2027,
		PreferredCountries: "United States, Canada",
		BudgetMin:          20000,
		BudgetMax:          60000,
		FundingPlan:        "self-funded",
		IELTSScore:         floatPtr(7.5),
		SOPStatus:          "Draft",
	}
}

func TestProfileCreateDerivesStateAndSeedsTasks(t *testing.T) {
	db, svc := setupProfileService(t)
	user := createTestUser(t, db, "amina@example.com")

	profile, err := svc.Create(context.Background(), user.ID, onboardingPayload())
	require.NoError(t, err)
	require.Equal(t, models.StrengthStrong, profile.AcademicStrength)
	require.Equal(t, models.StrengthStrong, profile.ExamStrength)
	require.Equal(t, models.StrengthWeak, profile.SOPStrength)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	require.True(t, refreshed.OnboardingCompleted)

	var tasks []models.Task
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&tasks).Error)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		require.Equal(t, models.TaskStatusPending, task.Status)
	}
}

func TestProfileCreateNormalizesTenPointGPA(t *testing.T) {
	db, svc := setupProfileService(t)
	user := createTestUser(t, db, "amina@example.com")

	payload := onboardingPayload()
	payload.GPA = floatPtr(8.0)
	payload.GPAScale = "10.0"

	profile, err := svc.Create(context.Background(), user.ID, payload)
	require.NoError(t, err)
	require.NotNil(t, profile.GPA)
	require.InDelta(t, 3.2, *profile.GPA, 0.001)

	// A later read must not rescale the stored value.
	fetched, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.InDelta(t, 3.2, *fetched.GPA, 0.001)
}

func TestProfileCreateTwiceRejected(t *testing.T) {
	db, svc := setupProfileService(t)
	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Create(context.Background(), user.ID, onboardingPayload())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), user.ID, onboardingPayload())
	require.ErrorIs(t, err, ErrProfileExists)
}

func TestProfileGetMissing(t *testing.T) {
	db, svc := setupProfileService(t)
	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Get(context.Background(), user.ID)
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileUpdatePartialRecomputesStrengths(t *testing.T) {
	db, svc := setupProfileService(t)
	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Create(context.Background(), user.ID, onboardingPayload())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), user.ID, dto.ProfileUpdateRequest{
		GPA:       floatPtr(2.8),
		SOPStatus: strPtr("Ready"),
	})
	require.NoError(t, err)
	require.Equal(t, models.StrengthWeak, updated.AcademicStrength)
	require.Equal(t, models.StrengthStrong, updated.SOPStrength)
	// Untouched fields survive the partial update.
	require.Equal(t, "Computer Science", updated.Major)
	require.Equal(t, 60000.0, updated.BudgetMax)
}

func TestProfileUpdateRejectsInvertedBudget(t *testing.T) {
	db, svc := setupProfileService(t)
	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Create(context.Background(), user.ID, onboardingPayload())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), user.ID, dto.ProfileUpdateRequest{
		BudgetMin: floatPtr(200000),
	})
	require.ErrorIs(t, err, ErrBudgetRange)

	// The stored budget is untouched by the rejected update.
	stored, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, 20000.0, stored.BudgetMin)
	require.Equal(t, 60000.0, stored.BudgetMax)

	// Moving both ends together is still allowed.
	updated, err := svc.Update(context.Background(), user.ID, dto.ProfileUpdateRequest{
		BudgetMin: floatPtr(70000),
		BudgetMax: floatPtr(90000),
	})
	require.NoError(t, err)
	require.Equal(t, 70000.0, updated.BudgetMin)
}

func TestProfileStrengthSummary(t *testing.T) {
	db, svc := setupProfileService(t)
	user := createTestUser(t, db, "amina@example.com")

	_, err := svc.Create(context.Background(), user.ID, onboardingPayload())
	require.NoError(t, err)

	strength, err := svc.Strength(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, dto.ProfileStrengthResponse{Academic: "strong", Exam: "strong", SOP: "weak"}, strength)
}
