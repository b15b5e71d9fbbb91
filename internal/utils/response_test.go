package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (*http.Response, APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload APIResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp, payload
}

func TestSendSuccess(t *testing.T) {
	resp, payload := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "all good", fiber.Map{"value": 1})
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
	require.Equal(t, "all good", payload.Message)
	require.NotNil(t, payload.Data)
}

func TestSendCreated(t *testing.T) {
	resp, payload := performRequest(t, func(c *fiber.Ctx) error {
		return SendCreated(c, "created", nil)
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, payload.Success)
}

func TestSendError(t *testing.T) {
	resp, payload := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusConflict, "already shortlisted")
	})

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "already shortlisted", payload.Message)
}

func TestSendErrorDefaultsMessage(t *testing.T) {
	_, payload := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusBadRequest, "")
	})

	require.Equal(t, "error", payload.Message)
}
