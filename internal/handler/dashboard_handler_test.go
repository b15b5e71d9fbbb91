package handler_test

import (
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uniadvisor/counsel-api/internal/config"
	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/handler"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/internal/router"
	"github.com/uniadvisor/counsel-api/internal/service"
)

func setupDashboardApp(t *testing.T) *fiber.App {
	t.Helper()

	db := openHandlerDB(t, "dashboard_handler")
	logger := zerolog.New(io.Discard)

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	user := seedHandlerUser(t, db, "dashboard@example.com")

	dashboardService := service.NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		repository.NewShortlistRepository(db),
		repository.NewTaskRepository(db),
		redisClient,
		time.Minute,
		logger,
	)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		DashboardHandler: handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware:    stubAuth(user.ID),
	})

	return app
}

func TestDashboardBeforeOnboarding(t *testing.T) {
	app := setupDashboardApp(t)

	resp, err := app.Test(jsonRequest(t, "GET", "/api/v1/dashboard", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.DashboardResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, match.StageBuildingProfile, body.Data.CurrentStage)
	require.Nil(t, body.Data.Profile)
	require.Zero(t, body.Data.ShortlistedCount)
}
