package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

// ErrUniversityNotFound indicates the requested catalog record is absent.
var ErrUniversityNotFound = errors.New("university not found")

// UniversityService serves the local catalog and profile-based
// recommendations.
type UniversityService interface {
	List(ctx context.Context, filter repository.UniversityFilter) ([]models.University, error)
	Get(ctx context.Context, id uint) (models.University, error)
	Recommendations(ctx context.Context, userID uint) ([]dto.Recommendation, error)
	Import(ctx context.Context, payload dto.UniversityImportRequest) (models.University, bool, error)
}

type universityService struct {
	universities repository.UniversityRepository
	profiles     repository.ProfileRepository
	classifier   match.Classifier
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewUniversityService builds the catalog service.
func NewUniversityService(universities repository.UniversityRepository, profiles repository.ProfileRepository, classifier match.Classifier, validate *validator.Validate, logger zerolog.Logger) UniversityService {
	return &universityService{
		universities: universities,
		profiles:     profiles,
		classifier:   classifier,
		validator:    validate,
		logger:       logger.With().Str("component", "university_service").Logger(),
	}
}

func (s *universityService) List(ctx context.Context, filter repository.UniversityFilter) ([]models.University, error) {
	return s.universities.List(ctx, filter)
}

func (s *universityService) Get(ctx context.Context, id uint) (models.University, error) {
	university, err := s.universities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.University{}, ErrUniversityNotFound
		}
		return models.University{}, err
	}
	return university, nil
}

// Recommendations classifies every catalog university against the user's
// profile, narrowed to preferred countries when the profile names any.
func (s *universityService) Recommendations(ctx context.Context, userID uint) ([]dto.Recommendation, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	universities, err := s.universities.List(ctx, repository.UniversityFilter{})
	if err != nil {
		return nil, err
	}

	countries := splitCountries(profile.PreferredCountries)
	recommendations := make([]dto.Recommendation, 0, len(universities))
	for _, university := range universities {
		if len(countries) > 0 && !countryMatches(countries, university.Country) {
			continue
		}
		assessment := s.classifier.Classify(profile, university)
		recommendations = append(recommendations, dto.Recommendation{
			University: university,
			FitScore:   assessment.FitScore,
			RiskLevel:  assessment.Risk,
			Category:   match.CategoryFor(assessment.Risk),
			Reasoning:  assessment.Reasoning,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].FitScore > recommendations[j].FitScore
	})
	return recommendations, nil
}

// Import promotes an external directory result into the catalog. Importing
// a name that already exists returns the existing record; the second return
// value reports whether a new record was created.
func (s *universityService) Import(ctx context.Context, payload dto.UniversityImportRequest) (models.University, bool, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.University{}, false, err
	}

	existing, err := s.universities.GetByName(ctx, payload.Name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return models.University{}, false, err
	}

	programs, err := json.Marshal(payload.Programs)
	if err != nil {
		return models.University{}, false, err
	}

	university := models.University{
		Name:                 payload.Name,
		Country:              payload.Country,
		City:                 payload.City,
		Ranking:              payload.Ranking,
		Programs:             datatypes.JSON(programs),
		MinGPA:               payload.MinGPA,
		MinIELTS:             payload.MinIELTS,
		MinTOEFL:             payload.MinTOEFL,
		MinGRE:               payload.MinGRE,
		MinGMAT:              payload.MinGMAT,
		TuitionFeeMin:        payload.TuitionFeeMin,
		TuitionFeeMax:        payload.TuitionFeeMax,
		LivingCostYearly:     payload.LivingCostYearly,
		AcceptanceRate:       payload.AcceptanceRate,
		Description:          payload.Description,
		Website:              payload.Website,
		ScholarshipAvailable: payload.ScholarshipAvailable,
		ScholarshipDetails:   payload.ScholarshipDetails,
	}
	if err := s.universities.Create(ctx, &university); err != nil {
		return models.University{}, false, err
	}

	s.logger.Info().Uint("university_id", university.ID).Str("name", university.Name).Msg("university imported")
	return university, true, nil
}

func splitCountries(raw string) []string {
	var countries []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			countries = append(countries, trimmed)
		}
	}
	return countries
}

func countryMatches(countries []string, country string) bool {
	for _, c := range countries {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}
