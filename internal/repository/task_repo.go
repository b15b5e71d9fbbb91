package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/uniadvisor/counsel-api/internal/models"
)

// TaskRepository persists guidance tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	CreateBatch(ctx context.Context, tasks []models.Task) error
	ListByUser(ctx context.Context, userID uint) ([]models.Task, error)
	ListPending(ctx context.Context, userID uint, limit int) ([]models.Task, error)
	GetByID(ctx context.Context, userID, taskID uint) (models.Task, error)
	Save(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID, taskID uint) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository constructs a task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) CreateBatch(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListPending(ctx context.Context, userID uint, limit int) ([]models.Task, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, models.TaskStatusCompleted).
		Order("priority DESC, created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, userID, taskID uint) (models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error
	if err != nil {
		return models.Task{}, translateNotFound(err)
	}
	return task, nil
}

func (r *taskRepository) Save(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
