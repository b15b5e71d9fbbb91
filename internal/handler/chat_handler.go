package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/service"
	"github.com/uniadvisor/counsel-api/internal/utils"
)

// ChatHandler wires the counsellor conversation routes.
type ChatHandler struct {
	service service.ChatService
	logger  zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service service.ChatService, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register attaches chat endpoints to the router group.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("", h.send)
	router.Get("/history", h.history)
}

func (h *ChatHandler) send(c *fiber.Ctx) error {
	var payload dto.ChatRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Send(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("chat turn failed")
		return utils.SendError(c, fiber.StatusServiceUnavailable, "counsellor is unavailable, try again shortly")
	}

	return utils.SendSuccess(c, "counsellor replied", response)
}

func (h *ChatHandler) history(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	history, err := h.service.History(c.Context(), userIDFromContext(c), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "chat history", history)
}
