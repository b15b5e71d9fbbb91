package models

import "time"

// User represents an account that owns a profile, shortlist, and tasks.
type User struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Email               string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName            string    `gorm:"size:255;not null" json:"full_name"`
	HashedPassword      string    `gorm:"size:255;not null" json:"-"`
	IsActive            bool      `gorm:"not null;default:true" json:"is_active"`
	OnboardingCompleted bool      `gorm:"not null;default:false" json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
