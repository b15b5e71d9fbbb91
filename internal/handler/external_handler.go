package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/service"
	"github.com/uniadvisor/counsel-api/internal/utils"
)

// ExternalUniversityHandler wires the public-directory search route.
type ExternalUniversityHandler struct {
	service service.ExternalSearchService
	logger  zerolog.Logger
}

// NewExternalUniversityHandler constructs the handler.
func NewExternalUniversityHandler(service service.ExternalSearchService, logger zerolog.Logger) *ExternalUniversityHandler {
	return &ExternalUniversityHandler{
		service: service,
		logger:  logger.With().Str("component", "external_university_handler").Logger(),
	}
}

// Register attaches the search endpoint to the router group.
func (h *ExternalUniversityHandler) Register(router fiber.Router) {
	router.Get("/search", h.search)
}

func (h *ExternalUniversityHandler) search(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	results, err := h.service.Search(
		c.Context(),
		strings.TrimSpace(c.Query("country")),
		strings.TrimSpace(c.Query("name")),
		limit,
		offset,
	)
	if err != nil {
		h.logger.Error().Err(err).Msg("directory search failed")
		return utils.SendError(c, fiber.StatusBadGateway, "university directory unavailable")
	}

	return utils.SendSuccess(c, "directory search results", results)
}
