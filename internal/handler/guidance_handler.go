package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/service"
	"github.com/uniadvisor/counsel-api/internal/utils"
)

// GuidanceHandler wires the gated application-guidance route.
type GuidanceHandler struct {
	service service.GuidanceService
	logger  zerolog.Logger
}

// NewGuidanceHandler constructs the handler.
func NewGuidanceHandler(service service.GuidanceService, logger zerolog.Logger) *GuidanceHandler {
	return &GuidanceHandler{
		service: service,
		logger:  logger.With().Str("component", "guidance_handler").Logger(),
	}
}

// Register attaches the guidance endpoint to the router group.
func (h *GuidanceHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *GuidanceHandler) get(c *fiber.Ctx) error {
	guidance, err := h.service.Get(c.Context(), userIDFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "guidance retrieved", guidance)
}
