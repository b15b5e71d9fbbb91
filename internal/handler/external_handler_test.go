package handler_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uniadvisor/counsel-api/internal/config"
	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/handler"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/internal/router"
	"github.com/uniadvisor/counsel-api/internal/service"
	"github.com/uniadvisor/counsel-api/pkg/hipo"
)

type fixedDirectory struct {
	hits []hipo.University
	err  error
}

func (d *fixedDirectory) Search(_ context.Context, _, _ string, _, _ int) ([]hipo.University, error) {
	return d.hits, d.err
}

func setupExternalApp(t *testing.T, directory service.UniversityDirectory) *fiber.App {
	t.Helper()

	db := openHandlerDB(t, "external_handler")
	logger := zerolog.New(io.Discard)

	user := seedHandlerUser(t, db, "external@example.com")

	externalService := service.NewExternalSearchService(directory, repository.NewUniversityRepository(db), logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		ExternalHandler: handler.NewExternalUniversityHandler(externalService, logger),
		JWTMiddleware:   stubAuth(user.ID),
	})

	return app
}

func TestExternalSearch(t *testing.T) {
	app := setupExternalApp(t, &fixedDirectory{hits: []hipo.University{
		{Name: "Aalto University", Country: "Finland", Website: "https://www.aalto.fi"},
	}})

	resp, err := app.Test(jsonRequest(t, "GET", "/api/v1/external-universities/search?country=Finland", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.ExternalUniversity `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data, 1)
	require.Equal(t, "Aalto University", body.Data[0].Name)
	require.False(t, body.Data[0].Imported)
}

func TestExternalSearchDirectoryDown(t *testing.T) {
	app := setupExternalApp(t, &fixedDirectory{err: errors.New("connection refused")})

	resp, err := app.Test(jsonRequest(t, "GET", "/api/v1/external-universities/search", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
