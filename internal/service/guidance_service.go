package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

const guidanceLockedReason = "Lock a university from your shortlist to unlock your application guidance."

// GuidanceService serves the application-guidance surface, gated on a
// locked shortlist entry.
type GuidanceService interface {
	Get(ctx context.Context, userID uint) (dto.GuidanceResponse, error)
}

type guidanceService struct {
	entries repository.ShortlistRepository
	tasks   repository.TaskRepository
	logger  zerolog.Logger
}

// NewGuidanceService builds the guidance service.
func NewGuidanceService(entries repository.ShortlistRepository, tasks repository.TaskRepository, logger zerolog.Logger) GuidanceService {
	return &guidanceService{
		entries: entries,
		tasks:   tasks,
		logger:  logger.With().Str("component", "guidance_service").Logger(),
	}
}

// Get returns the guidance payload. Task data is only loaded once the gate
// is open; before that the response carries the locked-state explanation.
func (s *guidanceService) Get(ctx context.Context, userID uint) (dto.GuidanceResponse, error) {
	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return dto.GuidanceResponse{}, err
	}

	target, locked := match.LockedEntry(entries)
	if !locked {
		return dto.GuidanceResponse{
			Unlocked:     false,
			LockedReason: guidanceLockedReason,
		}, nil
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return dto.GuidanceResponse{}, err
	}

	response := dto.NewShortlistEntryResponse(target)
	return dto.GuidanceResponse{
		Unlocked: true,
		Target:   &response,
		Tasks:    tasks,
	}, nil
}
