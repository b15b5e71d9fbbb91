package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// ErrDuplicateEntry is returned when a university is already on the user's
// shortlist.
var ErrDuplicateEntry = errors.New("university already shortlisted")

// ShortlistRepository persists shortlist entries and enforces the
// at-most-one-locked invariant at the storage boundary.
type ShortlistRepository interface {
	Create(ctx context.Context, entry *models.ShortlistEntry) error
	ListByUser(ctx context.Context, userID uint) ([]models.ShortlistEntry, error)
	GetByID(ctx context.Context, userID, entryID uint) (models.ShortlistEntry, error)
	GetByUniversity(ctx context.Context, userID, universityID uint) (models.ShortlistEntry, error)
	SetLock(ctx context.Context, userID, entryID uint, lock bool) (models.ShortlistEntry, error)
	Delete(ctx context.Context, userID, entryID uint) error
}

type shortlistRepository struct {
	db *gorm.DB
}

// NewShortlistRepository constructs a shortlist repository.
func NewShortlistRepository(db *gorm.DB) ShortlistRepository {
	return &shortlistRepository{db: db}
}

func (r *shortlistRepository) Create(ctx context.Context, entry *models.ShortlistEntry) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShortlistEntry{}).
		Where("user_id = ? AND university_id = ?", entry.UserID, entry.UniversityID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEntry
	}

	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByUser returns entries in insertion order with the university
// embedded.
func (r *shortlistRepository) ListByUser(ctx context.Context, userID uint) ([]models.ShortlistEntry, error) {
	var entries []models.ShortlistEntry
	err := r.db.WithContext(ctx).
		Preload("University").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *shortlistRepository) GetByID(ctx context.Context, userID, entryID uint) (models.ShortlistEntry, error) {
	var entry models.ShortlistEntry
	err := r.db.WithContext(ctx).
		Preload("University").
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		return models.ShortlistEntry{}, translateNotFound(err)
	}
	return entry, nil
}

func (r *shortlistRepository) GetByUniversity(ctx context.Context, userID, universityID uint) (models.ShortlistEntry, error) {
	var entry models.ShortlistEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND university_id = ?", userID, universityID).
		First(&entry).Error
	if err != nil {
		return models.ShortlistEntry{}, translateNotFound(err)
	}
	return entry, nil
}

// SetLock flips the lock flag inside a transaction. Locking first clears
// every other locked entry for the user so at most one entry is ever
// locked, even mid-transaction from the perspective of other readers.
func (r *shortlistRepository) SetLock(ctx context.Context, userID, entryID uint, lock bool) (models.ShortlistEntry, error) {
	var entry models.ShortlistEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
			return translateNotFound(err)
		}

		if lock {
			if err := tx.Model(&models.ShortlistEntry{}).
				Where("user_id = ? AND id <> ? AND is_locked = ?", userID, entryID, true).
				Updates(map[string]interface{}{"is_locked": false, "locked_at": nil}).Error; err != nil {
				return err
			}
			now := time.Now().UTC()
			entry.IsLocked = true
			entry.LockedAt = &now
		} else {
			entry.IsLocked = false
			entry.LockedAt = nil
		}

		return tx.Model(&entry).
			Select("is_locked", "locked_at").
			Updates(map[string]interface{}{"is_locked": entry.IsLocked, "locked_at": entry.LockedAt}).Error
	})
	if err != nil {
		return models.ShortlistEntry{}, err
	}

	return r.GetByID(ctx, userID, entryID)
}

func (r *shortlistRepository) Delete(ctx context.Context, userID, entryID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.ShortlistEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
