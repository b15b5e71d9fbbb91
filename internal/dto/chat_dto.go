package dto

import (
	"time"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// ChatRequest carries one user message to the counsellor.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// ChatMessageResponse is one persisted conversation turn.
type ChatMessageResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Action result kinds rendered specially by the client.
const (
	ActionResultProfileUpdate    = "PROFILE_UPDATE"
	ActionResultUniversitySearch = "UNIVERSITY_SEARCH"
	ActionResultTaskCreated      = "TASK_CREATED"
	ActionResultTaskDeleted      = "TASK_DELETED"
	ActionResultShortlisted      = "SHORTLISTED"
	ActionResultLocked           = "LOCKED"
)

// ActionResult is the tagged outcome of one executed counsellor action.
// Exactly one of the payload fields is set, according to Kind.
type ActionResult struct {
	Kind    string                 `json:"kind"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
	Results []ExternalUniversity   `json:"results,omitempty"`
	Detail  string                 `json:"detail,omitempty"`
}

// ChatResponse is the assistant's reply plus any executed actions.
type ChatResponse struct {
	Message       string                   `json:"message"`
	Actions       []map[string]interface{} `json:"actions,omitempty"`
	ActionResults []ActionResult           `json:"action_results,omitempty"`
	Fallback      bool                     `json:"fallback,omitempty"`
}

// NewChatMessageResponse maps a model onto its response shape.
func NewChatMessageResponse(message models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        message.ID,
		UserID:    message.UserID,
		Role:      message.Role,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

// NewChatMessageResponseSlice maps messages preserving order.
func NewChatMessageResponseSlice(messages []models.ChatMessage) []ChatMessageResponse {
	responses := make([]ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, NewChatMessageResponse(message))
	}
	return responses
}
