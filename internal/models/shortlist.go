package models

import "time"

// Category buckets a shortlisted university by ambition level. This is a
// separate vocabulary from match.Risk and match.Band and is kept distinct
// on purpose.
type Category string

// Category values.
const (
	CategoryDream  Category = "dream"
	CategoryTarget Category = "target"
	CategorySafe   Category = "safe"
)

// ShortlistEntry snapshots a university pick together with the fit
// assessment computed when it was added. The assessment is never recomputed
// afterwards; a later profile edit does not touch existing entries.
//
// Invariant: across all entries of one user, at most one has IsLocked set.
type ShortlistEntry struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	UserID       uint `gorm:"index:idx_shortlist_user_university,unique;not null" json:"user_id"`
	UniversityID uint `gorm:"index:idx_shortlist_user_university,unique;not null" json:"university_id"`

	Category    Category `gorm:"size:16;not null" json:"category"`
	FitScore    float64  `json:"fit_score"`
	RiskLevel   string   `gorm:"size:32" json:"risk_level"`
	AIReasoning string   `gorm:"column:ai_reasoning;type:text" json:"ai_reasoning"`

	IsLocked bool       `gorm:"not null;default:false" json:"is_locked"`
	LockedAt *time.Time `json:"locked_at"`

	CreatedAt time.Time `json:"created_at"`

	University University `gorm:"foreignKey:UniversityID" json:"university"`
}
