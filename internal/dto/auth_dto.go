package dto

import (
	"time"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// SignupRequest carries new-account registration data.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest carries credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID                  uint      `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name"`
	IsActive            bool      `json:"is_active"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

// TokenResponse wraps an issued bearer token together with its owner.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// NewUserResponse maps a user model onto its public view.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		FullName:            user.FullName,
		IsActive:            user.IsActive,
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           user.CreatedAt,
	}
}
