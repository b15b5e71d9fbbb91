package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/observability"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

// DashboardService aggregates the home-screen view. The current stage is
// derived from shortlist state on every build and never persisted, so the
// cache must be dropped whenever profile, shortlist, or task state changes.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID uint) (dto.DashboardResponse, error)
	Invalidate(ctx context.Context, userID uint)
}

type dashboardService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	entries  repository.ShortlistRepository
	tasks    repository.TaskRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(users repository.UserRepository, profiles repository.ProfileRepository, entries repository.ShortlistRepository, tasks repository.TaskRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		users:    users,
		profiles: profiles,
		entries:  entries,
		tasks:    tasks,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func dashboardCacheKey(userID uint) string {
	return fmt.Sprintf("dashboard:user:%d", userID)
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID uint) (dto.DashboardResponse, error) {
	cacheKey := dashboardCacheKey(userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", userID).Msg("dashboard cache hit")
				observability.CacheEvents().WithLabelValues("hit").Inc()
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
		observability.CacheEvents().WithLabelValues("miss").Inc()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.DashboardResponse{}, ErrUserNotFound
		}
		return dto.DashboardResponse{}, err
	}

	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		User:             dto.NewUserResponse(user),
		Tasks:            tasks,
		ShortlistedCount: len(entries),
	}

	stage := match.StageFor(user, entries)
	response.CurrentStage = stage
	response.StageProgress = stage.Progress()

	if _, locked := match.LockedEntry(entries); locked {
		response.LockedCount = 1
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		response.Profile = &profile
		response.ProfileStrength = &dto.ProfileStrengthResponse{
			Academic: string(profile.AcademicStrength),
			Exam:     string(profile.ExamStrength),
			SOP:      string(profile.SOPStrength),
		}
	case errors.Is(err, repository.ErrNotFound):
		// No profile yet; the dashboard still renders with stage
		// building_profile.
	default:
		return dto.DashboardResponse{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// Invalidate drops the cached dashboard so the next read rebuilds the
// derived stage from current state.
func (s *dashboardService) Invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey(userID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate dashboard cache")
		return
	}
	observability.CacheEvents().WithLabelValues("invalidate").Inc()
}

var _ DashboardInvalidator = (DashboardService)(nil)
