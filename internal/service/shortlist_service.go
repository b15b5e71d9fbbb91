package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

// ErrAlreadyShortlisted indicates the university is already on the user's
// shortlist.
var ErrAlreadyShortlisted = errors.New("university already in shortlist")

// ErrEntryLocked indicates a destructive operation against the locked
// entry. Unlock first, then remove.
var ErrEntryLocked = errors.New("shortlist entry is locked")

// ErrEntryNotFound indicates the shortlist entry does not exist for the
// user.
var ErrEntryNotFound = errors.New("shortlist entry not found")

// ShortlistService manages the user's shortlist and its lock state.
type ShortlistService interface {
	Add(ctx context.Context, userID uint, payload dto.ShortlistAddRequest) (dto.ShortlistEntryResponse, error)
	List(ctx context.Context, userID uint) ([]dto.ShortlistEntryResponse, error)
	SetLock(ctx context.Context, userID uint, payload dto.ShortlistLockRequest) (dto.ShortlistEntryResponse, error)
	Remove(ctx context.Context, userID, entryID uint) error
}

type shortlistService struct {
	entries      repository.ShortlistRepository
	universities repository.UniversityRepository
	cache        DashboardInvalidator
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewShortlistService builds the shortlist service.
func NewShortlistService(entries repository.ShortlistRepository, universities repository.UniversityRepository, cache DashboardInvalidator, validate *validator.Validate, logger zerolog.Logger) ShortlistService {
	return &shortlistService{
		entries:      entries,
		universities: universities,
		cache:        cache,
		validator:    validate,
		logger:       logger.With().Str("component", "shortlist_service").Logger(),
	}
}

// Add stores a shortlist entry with the fit snapshot taken at add time.
// Only imported universities can be shortlisted; directory hits must go
// through the import endpoint first.
func (s *shortlistService) Add(ctx context.Context, userID uint, payload dto.ShortlistAddRequest) (dto.ShortlistEntryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ShortlistEntryResponse{}, err
	}

	university, err := s.universities.GetByID(ctx, payload.UniversityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ShortlistEntryResponse{}, ErrUniversityNotFound
		}
		return dto.ShortlistEntryResponse{}, err
	}

	entry := models.ShortlistEntry{
		UserID:       userID,
		UniversityID: university.ID,
		Category:     models.Category(payload.Category),
		FitScore:     payload.FitScore,
		RiskLevel:    payload.RiskLevel,
		AIReasoning:  payload.AIReasoning,
	}
	if err := s.entries.Create(ctx, &entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return dto.ShortlistEntryResponse{}, ErrAlreadyShortlisted
		}
		return dto.ShortlistEntryResponse{}, err
	}
	entry.University = university

	s.invalidate(ctx, userID)
	s.logger.Info().Uint("user_id", userID).Uint("university_id", university.ID).Msg("university shortlisted")
	return dto.NewShortlistEntryResponse(entry), nil
}

func (s *shortlistService) List(ctx context.Context, userID uint) ([]dto.ShortlistEntryResponse, error) {
	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewShortlistEntryResponseSlice(entries), nil
}

// SetLock flips the lock flag. Locking clears any previously locked entry
// in the same transaction, so at most one entry is ever locked.
func (s *shortlistService) SetLock(ctx context.Context, userID uint, payload dto.ShortlistLockRequest) (dto.ShortlistEntryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ShortlistEntryResponse{}, err
	}

	entry, err := s.entries.SetLock(ctx, userID, payload.ShortlistID, payload.Lock)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ShortlistEntryResponse{}, ErrEntryNotFound
		}
		return dto.ShortlistEntryResponse{}, err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().
		Uint("user_id", userID).
		Uint("shortlist_id", entry.ID).
		Bool("locked", payload.Lock).
		Msg("shortlist lock changed")
	return dto.NewShortlistEntryResponse(entry), nil
}

// Remove deletes an entry. A locked entry is refused before any delete
// happens; the caller must unlock it first.
func (s *shortlistService) Remove(ctx context.Context, userID, entryID uint) error {
	entry, err := s.entries.GetByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if entry.IsLocked {
		return ErrEntryLocked
	}

	if err := s.entries.Delete(ctx, userID, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Uint("user_id", userID).Uint("shortlist_id", entryID).Msg("shortlist entry removed")
	return nil
}

func (s *shortlistService) invalidate(ctx context.Context, userID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
