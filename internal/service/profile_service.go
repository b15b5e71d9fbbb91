package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

// ErrProfileExists indicates onboarding was already completed for the user.
var ErrProfileExists = errors.New("profile already exists")

// ErrProfileNotFound indicates the user has not completed onboarding yet.
var ErrProfileNotFound = errors.New("profile not found")

// ErrBudgetRange indicates budget_min would exceed budget_max.
var ErrBudgetRange = errors.New("budget_min must not exceed budget_max")

// DashboardInvalidator drops cached dashboard state after a mutation.
// Mutating services tolerate a nil invalidator.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, userID uint)
}

// ProfileService manages the onboarding profile and its derived strengths.
type ProfileService interface {
	Create(ctx context.Context, userID uint, payload dto.ProfileCreateRequest) (models.Profile, error)
	Get(ctx context.Context, userID uint) (models.Profile, error)
	Update(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (models.Profile, error)
	Strength(ctx context.Context, userID uint) (dto.ProfileStrengthResponse, error)
}

type profileService struct {
	profiles  repository.ProfileRepository
	users     repository.UserRepository
	tasks     repository.TaskRepository
	cache     DashboardInvalidator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProfileService builds the profile service.
func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, tasks repository.TaskRepository, cache DashboardInvalidator, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		profiles:  profiles,
		users:     users,
		tasks:     tasks,
		cache:     cache,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) Create(ctx context.Context, userID uint, payload dto.ProfileCreateRequest) (models.Profile, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Profile{}, err
	}

	if _, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		return models.Profile{}, ErrProfileExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.Profile{}, err
	}

	profile := models.Profile{
		UserID:             userID,
		EducationLevel:     payload.EducationLevel,
		Degree:             payload.Degree,
		Major:              payload.Major,
		GraduationYear:     payload.GraduationYear,
		GPA:                normalizedGPA(payload.GPA, payload.GPAScale),
		Age:                payload.Age,
		IntendedDegree:     payload.IntendedDegree,
		FieldOfStudy:       payload.FieldOfStudy,
		TargetIntakeYear:   payload.TargetIntakeYear,
		PreferredCountries: payload.PreferredCountries,
		BudgetMin:          payload.BudgetMin,
		BudgetMax:          payload.BudgetMax,
		FundingPlan:        payload.FundingPlan,
		IELTSScore:         payload.IELTSScore,
		TOEFLScore:         payload.TOEFLScore,
		GREScore:           payload.GREScore,
		GMATScore:          payload.GMATScore,
		SOPStatus:          payload.SOPStatus,
	}
	refreshStrengths(&profile)

	if err := s.profiles.Create(ctx, &profile); err != nil {
		return models.Profile{}, err
	}
	if err := s.users.SetOnboardingCompleted(ctx, userID); err != nil {
		return models.Profile{}, err
	}

	if err := s.tasks.CreateBatch(ctx, initialTasks(userID)); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to seed onboarding tasks")
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Uint("user_id", userID).Msg("profile created")
	return profile, nil
}

func (s *profileService) Get(ctx context.Context, userID uint) (models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (models.Profile, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Profile{}, err
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}

	applyProfileUpdate(&profile, payload)
	if profile.BudgetMin > profile.BudgetMax {
		return models.Profile{}, ErrBudgetRange
	}
	refreshStrengths(&profile)

	if err := s.profiles.Save(ctx, &profile); err != nil {
		return models.Profile{}, err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Uint("user_id", userID).Msg("profile updated")
	return profile, nil
}

func (s *profileService) Strength(ctx context.Context, userID uint) (dto.ProfileStrengthResponse, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return dto.ProfileStrengthResponse{}, err
	}
	return dto.ProfileStrengthResponse{
		Academic: string(profile.AcademicStrength),
		Exam:     string(profile.ExamStrength),
		SOP:      string(profile.SOPStrength),
	}, nil
}

func (s *profileService) invalidate(ctx context.Context, userID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

// normalizedGPA converts an incoming GPA to the 4.0 scale. This is the only
// place conversion happens; stored GPAs are never rescaled again.
func normalizedGPA(gpa *float64, scale string) *float64 {
	if gpa == nil {
		return nil
	}
	converted := match.NormalizeGPA(*gpa, scale)
	return &converted
}

func applyProfileUpdate(profile *models.Profile, payload dto.ProfileUpdateRequest) {
	if payload.EducationLevel != nil {
		profile.EducationLevel = *payload.EducationLevel
	}
	if payload.Degree != nil {
		profile.Degree = *payload.Degree
	}
	if payload.Major != nil {
		profile.Major = *payload.Major
	}
	if payload.GraduationYear != nil {
		profile.GraduationYear = *payload.GraduationYear
	}
	if payload.GPA != nil {
		profile.GPA = normalizedGPA(payload.GPA, payload.GPAScale)
	}
	if payload.Age != nil {
		profile.Age = payload.Age
	}
	if payload.IntendedDegree != nil {
		profile.IntendedDegree = *payload.IntendedDegree
	}
	if payload.FieldOfStudy != nil {
		profile.FieldOfStudy = *payload.FieldOfStudy
	}
	if payload.TargetIntakeYear != nil {
		profile.TargetIntakeYear = *payload.TargetIntakeYear
	}
	if payload.PreferredCountries != nil {
		profile.PreferredCountries = *payload.PreferredCountries
	}
	if payload.BudgetMin != nil {
		profile.BudgetMin = *payload.BudgetMin
	}
	if payload.BudgetMax != nil {
		profile.BudgetMax = *payload.BudgetMax
	}
	if payload.FundingPlan != nil {
		profile.FundingPlan = *payload.FundingPlan
	}
	if payload.IELTSScore != nil {
		profile.IELTSScore = payload.IELTSScore
	}
	if payload.TOEFLScore != nil {
		profile.TOEFLScore = payload.TOEFLScore
	}
	if payload.GREScore != nil {
		profile.GREScore = payload.GREScore
	}
	if payload.GMATScore != nil {
		profile.GMATScore = payload.GMATScore
	}
	if payload.SOPStatus != nil {
		profile.SOPStatus = *payload.SOPStatus
	}
}

func refreshStrengths(profile *models.Profile) {
	profile.AcademicStrength = match.AcademicStrength(profile.GPA)
	profile.ExamStrength = match.ExamStrength(profile.IELTSScore, profile.TOEFLScore)
	profile.SOPStrength = match.SOPStrength(profile.SOPStatus)
}

// initialTasks is the starter checklist created right after onboarding.
func initialTasks(userID uint) []models.Task {
	return []models.Task{
		{UserID: userID, Title: "Complete your profile details", Description: "Review your academic background and make sure every field is accurate.", Status: models.TaskStatusPending, Priority: 3},
		{UserID: userID, Title: "Explore university recommendations", Description: "Browse the universities matched to your profile and note the ones you like.", Status: models.TaskStatusPending, Priority: 2},
		{UserID: userID, Title: "Build your shortlist", Description: "Add a balanced mix of dream, target, and safe universities to your shortlist.", Status: models.TaskStatusPending, Priority: 1},
	}
}
