package dto

import (
	"time"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// ShortlistAddRequest adds a university to the shortlist. The fit snapshot
// travels with the request so the stored values match exactly what the
// user saw when deciding.
type ShortlistAddRequest struct {
	UniversityID uint    `json:"university_id" validate:"required,gt=0"`
	Category     string  `json:"category" validate:"required,oneof=dream target safe"`
	FitScore     float64 `json:"fit_score" validate:"gte=0,lte=100"`
	RiskLevel    string  `json:"risk_level" validate:"required"`
	AIReasoning  string  `json:"ai_reasoning"`
}

// ShortlistLockRequest flips the lock flag on one entry.
type ShortlistLockRequest struct {
	ShortlistID uint `json:"shortlist_id" validate:"required,gt=0"`
	Lock        bool `json:"lock"`
}

// ShortlistEntryResponse is the public view of a shortlist entry with its
// university embedded.
type ShortlistEntryResponse struct {
	ID           uint              `json:"id"`
	UserID       uint              `json:"user_id"`
	UniversityID uint              `json:"university_id"`
	Category     models.Category   `json:"category"`
	FitScore     float64           `json:"fit_score"`
	RiskLevel    string            `json:"risk_level"`
	AIReasoning  string            `json:"ai_reasoning"`
	IsLocked     bool              `json:"is_locked"`
	LockedAt     *time.Time        `json:"locked_at"`
	CreatedAt    time.Time         `json:"created_at"`
	University   models.University `json:"university"`
}

// NewShortlistEntryResponse maps a model onto its response shape.
func NewShortlistEntryResponse(entry models.ShortlistEntry) ShortlistEntryResponse {
	return ShortlistEntryResponse{
		ID:           entry.ID,
		UserID:       entry.UserID,
		UniversityID: entry.UniversityID,
		Category:     entry.Category,
		FitScore:     entry.FitScore,
		RiskLevel:    entry.RiskLevel,
		AIReasoning:  entry.AIReasoning,
		IsLocked:     entry.IsLocked,
		LockedAt:     entry.LockedAt,
		CreatedAt:    entry.CreatedAt,
		University:   entry.University,
	}
}

// NewShortlistEntryResponseSlice maps entries preserving order.
func NewShortlistEntryResponseSlice(entries []models.ShortlistEntry) []ShortlistEntryResponse {
	responses := make([]ShortlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewShortlistEntryResponse(entry))
	}
	return responses
}
