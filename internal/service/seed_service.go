package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService loads curated university batches into the catalog. It is a
// deployment tool, gated behind a shared token.
type SeedService interface {
	SeedUniversities(ctx context.Context, token string, items []models.University) (int64, error)
}

type seedService struct {
	universities repository.UniversityRepository
	enabled      bool
	token        string
	logger       zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(universities repository.UniversityRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		universities: universities,
		enabled:      enabled,
		token:        token,
		logger:       logger.With().Str("component", "seed_service").Logger(),
	}
}

// SeedUniversities upserts the batch by name; already-known universities
// are skipped, not overwritten.
func (s *seedService) SeedUniversities(ctx context.Context, token string, items []models.University) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	normalized := make([]models.University, 0, len(items))
	for _, item := range items {
		item.ID = 0
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			continue
		}
		normalized = append(normalized, item)
	}

	affected, err := s.universities.UpsertBatch(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("universities seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtleConstantTimeCompare(expected, strings.TrimSpace(token))
}

func subtleConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}
