package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// ChatRepository persists counsellor conversation turns.
type ChatRepository interface {
	Save(ctx context.Context, message *models.ChatMessage) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.ChatMessage, error)
	Delete(ctx context.Context, messageID uint) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository constructs a chat repository backed by GORM.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Save(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByUser returns the most recent messages in chronological order.
func (r *chatRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// Delete removes a persisted message. Used to roll back the optimistic
// user-turn write when the assistant response fails.
func (r *chatRepository) Delete(ctx context.Context, messageID uint) error {
	return r.db.WithContext(ctx).Delete(&models.ChatMessage{}, messageID).Error
}
