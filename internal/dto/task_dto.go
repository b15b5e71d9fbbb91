package dto

import "time"

// TaskCreateRequest creates a guidance task.
type TaskCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=2,max=255"`
	Description string     `json:"description"`
	Priority    int        `json:"priority" validate:"omitempty,gte=1,lte=5"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskUpdateRequest partially updates a task. Nil fields are left
// untouched.
type TaskUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *int       `json:"priority" validate:"omitempty,gte=1,lte=5"`
	DueDate     *time.Time `json:"due_date"`
}
