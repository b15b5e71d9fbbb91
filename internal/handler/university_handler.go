package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/internal/service"
	"github.com/uniadvisor/counsel-api/internal/utils"
)

// UniversityHandler wires the catalog, recommendation, and import routes.
type UniversityHandler struct {
	service service.UniversityService
	logger  zerolog.Logger
}

// NewUniversityHandler constructs the handler.
func NewUniversityHandler(service service.UniversityService, logger zerolog.Logger) *UniversityHandler {
	return &UniversityHandler{
		service: service,
		logger:  logger.With().Str("component", "university_handler").Logger(),
	}
}

// Register attaches university endpoints to the router group.
func (h *UniversityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/recommendations", h.recommendations)
	router.Post("/import", h.importUniversity)
	router.Get("/:id", h.get)
}

func (h *UniversityHandler) list(c *fiber.Ctx) error {
	filter, err := catalogFilter(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid filter parameter")
	}

	universities, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "universities retrieved", universities)
}

func (h *UniversityHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	university, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUniversityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "university not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "university retrieved", university)
}

func (h *UniversityHandler) recommendations(c *fiber.Ctx) error {
	recommendations, err := h.service.Recommendations(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "complete your profile to get recommendations")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "recommendations generated", recommendations)
}

func (h *UniversityHandler) importUniversity(c *fiber.Ctx) error {
	var payload dto.UniversityImportRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	university, created, err := h.service.Import(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return h.internalError(c, err)
	}

	if created {
		return utils.SendCreated(c, "university imported", university)
	}
	return utils.SendSuccess(c, "university already in catalog", university)
}

func (h *UniversityHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

func catalogFilter(c *fiber.Ctx) (repository.UniversityFilter, error) {
	filter := repository.UniversityFilter{
		Country: strings.TrimSpace(c.Query("country")),
		Major:   strings.TrimSpace(c.Query("major")),
	}

	var err error
	if filter.MinTuition, err = parseQueryFloat(c, "min_tuition"); err != nil {
		return filter, err
	}
	if filter.MaxTuition, err = parseQueryFloat(c, "max_tuition"); err != nil {
		return filter, err
	}
	if filter.MinRanking, err = parseQueryIntPtr(c, "min_ranking"); err != nil {
		return filter, err
	}
	if filter.MaxRanking, err = parseQueryIntPtr(c, "max_ranking"); err != nil {
		return filter, err
	}
	if filter.Scholarship, err = parseQueryBool(c, "scholarship"); err != nil {
		return filter, err
	}
	return filter, nil
}
