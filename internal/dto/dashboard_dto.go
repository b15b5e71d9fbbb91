package dto

import (
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/models"
)

// DashboardResponse aggregates everything the dashboard surface renders.
// CurrentStage is derived on every build, never read from storage.
type DashboardResponse struct {
	User             UserResponse             `json:"user"`
	Profile          *models.Profile          `json:"profile"`
	CurrentStage     match.Stage              `json:"current_stage"`
	StageProgress    int                      `json:"stage_progress"`
	Tasks            []models.Task            `json:"tasks"`
	ShortlistedCount int                      `json:"shortlisted_count"`
	LockedCount      int                      `json:"locked_count"`
	ProfileStrength  *ProfileStrengthResponse `json:"profile_strength"`
}

// GuidanceResponse is the task-gate surface. Tasks are only populated when
// Unlocked is true; before a lock exists the payload explains the gate
// instead of exposing task data.
type GuidanceResponse struct {
	Unlocked     bool                    `json:"unlocked"`
	Target       *ShortlistEntryResponse `json:"target,omitempty"`
	Tasks        []models.Task           `json:"tasks,omitempty"`
	LockedReason string                  `json:"locked_reason,omitempty"`
}
