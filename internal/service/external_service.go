package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/pkg/hipo"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// UniversityDirectory is the external search surface, satisfied by the
// hipo client.
type UniversityDirectory interface {
	Search(ctx context.Context, country, name string, limit, offset int) ([]hipo.University, error)
}

// ExternalSearchService queries the public university directory and marks
// which hits already exist in the local catalog.
type ExternalSearchService interface {
	Search(ctx context.Context, country, name string, limit, offset int) ([]dto.ExternalUniversity, error)
}

type externalSearchService struct {
	directory    UniversityDirectory
	universities repository.UniversityRepository
	logger       zerolog.Logger
}

// NewExternalSearchService builds the directory search service.
func NewExternalSearchService(directory UniversityDirectory, universities repository.UniversityRepository, logger zerolog.Logger) ExternalSearchService {
	return &externalSearchService{
		directory:    directory,
		universities: universities,
		logger:       logger.With().Str("component", "external_search_service").Logger(),
	}
}

func (s *externalSearchService) Search(ctx context.Context, country, name string, limit, offset int) ([]dto.ExternalUniversity, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	hits, err := s.directory.Search(ctx, country, name, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("university directory search failed")
		return nil, err
	}

	results := make([]dto.ExternalUniversity, 0, len(hits))
	for _, hit := range hits {
		results = append(results, dto.ExternalUniversity{
			Name:     hit.Name,
			Country:  hit.Country,
			Website:  hit.Website,
			Domains:  hit.Domains,
			Imported: s.alreadyImported(ctx, hit.Name),
		})
	}
	return results, nil
}

func (s *externalSearchService) alreadyImported(ctx context.Context, name string) bool {
	_, err := s.universities.GetByName(ctx, name)
	if err == nil {
		return true
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn().Err(err).Str("name", name).Msg("catalog lookup failed during directory search")
	}
	return false
}
