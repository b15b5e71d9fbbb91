package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

// ErrTaskNotFound indicates the task does not exist for the user.
var ErrTaskNotFound = errors.New("task not found")

// TaskService manages the guidance checklist.
type TaskService interface {
	List(ctx context.Context, userID uint) ([]models.Task, error)
	Create(ctx context.Context, userID uint, payload dto.TaskCreateRequest) (models.Task, error)
	Update(ctx context.Context, userID, taskID uint, payload dto.TaskUpdateRequest) (models.Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

type taskService struct {
	tasks     repository.TaskRepository
	cache     DashboardInvalidator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewTaskService builds the task service.
func NewTaskService(tasks repository.TaskRepository, cache DashboardInvalidator, validate *validator.Validate, logger zerolog.Logger) TaskService {
	return &taskService{
		tasks:     tasks,
		cache:     cache,
		validator: validate,
		logger:    logger.With().Str("component", "task_service").Logger(),
		now:       time.Now,
	}
}

func (s *taskService) List(ctx context.Context, userID uint) ([]models.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *taskService) Create(ctx context.Context, userID uint, payload dto.TaskCreateRequest) (models.Task, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Task{}, err
	}

	priority := payload.Priority
	if priority == 0 {
		priority = 1
	}

	task := models.Task{
		UserID:      userID,
		Title:       payload.Title,
		Description: payload.Description,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		DueDate:     payload.DueDate,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return models.Task{}, err
	}

	s.invalidate(ctx, userID)
	s.logger.Info().Uint("user_id", userID).Uint("task_id", task.ID).Msg("task created")
	return task, nil
}

func (s *taskService) Update(ctx context.Context, userID, taskID uint, payload dto.TaskUpdateRequest) (models.Task, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Task{}, err
	}

	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if payload.Title != nil {
		task.Title = *payload.Title
	}
	if payload.Description != nil {
		task.Description = *payload.Description
	}
	if payload.Priority != nil {
		task.Priority = *payload.Priority
	}
	if payload.DueDate != nil {
		task.DueDate = payload.DueDate
	}
	if payload.Status != nil {
		task.Status = models.TaskStatus(*payload.Status)
		if task.Status == models.TaskStatusCompleted {
			if task.CompletedAt == nil {
				completedAt := s.now()
				task.CompletedAt = &completedAt
			}
		} else {
			task.CompletedAt = nil
		}
	}

	if err := s.tasks.Save(ctx, &task); err != nil {
		return models.Task{}, err
	}

	s.invalidate(ctx, userID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID uint) error {
	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	s.invalidate(ctx, userID)
	s.logger.Info().Uint("user_id", userID).Uint("task_id", taskID).Msg("task deleted")
	return nil
}

func (s *taskService) invalidate(ctx context.Context, userID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
