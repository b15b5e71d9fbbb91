package handler_test

import (
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uniadvisor/counsel-api/internal/config"
	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/handler"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/internal/router"
	"github.com/uniadvisor/counsel-api/internal/service"
)

func setupProfileApp(t *testing.T) *fiber.App {
	t.Helper()

	db := openHandlerDB(t, "profile_handler")
	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	user := seedHandlerUser(t, db, "profile@example.com")

	profileService := service.NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewUserRepository(db),
		repository.NewTaskRepository(db),
		nil,
		validate,
		logger,
	)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		ProfileHandler: handler.NewProfileHandler(profileService, logger),
		JWTMiddleware:  stubAuth(user.ID),
	})

	return app
}

func onboardingRequest() dto.ProfileCreateRequest {
	gpa := 8.0
	ielts := 7.0
	return dto.ProfileCreateRequest{
		EducationLevel:     "undergraduate",
		Degree:             "BSc",
		Major:              "Computer Science",
		GraduationYear:     2025,
		GPA:                &gpa,
		GPAScale:           "10.0",
		IntendedDegree:     "MSc",
		FieldOfStudy:       "Computer Science",
		TargetIntakeYear:   2027,
		PreferredCountries: "Germany,Netherlands",
		BudgetMin:          10000,
		BudgetMax:          40000,
		FundingPlan:        "self-funded",
		IELTSScore:         &ielts,
		SOPStatus:          "drafting",
	}
}

func TestProfileCreateNormalizesGPA(t *testing.T) {
	app := setupProfileApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/profile", onboardingRequest()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool           `json:"success"`
		Data    models.Profile `json:"data"`
		Message string         `json:"message"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "profile created", body.Message)
	require.NotNil(t, body.Data.GPA)
	require.InDelta(t, 3.2, *body.Data.GPA, 0.001)
}

func TestProfileCreateTwiceRejected(t *testing.T) {
	app := setupProfileApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/profile", onboardingRequest()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/v1/profile", onboardingRequest()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProfileGetBeforeOnboarding(t *testing.T) {
	app := setupProfileApp(t)

	resp, err := app.Test(jsonRequest(t, "GET", "/api/v1/profile", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProfileStrengthEndpoint(t *testing.T) {
	app := setupProfileApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/profile", onboardingRequest()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "GET", "/api/v1/profile/strength", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.ProfileStrengthResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, "average", body.Data.Academic)
	require.Equal(t, "strong", body.Data.Exam)
	require.Equal(t, "weak", body.Data.SOP)
}
