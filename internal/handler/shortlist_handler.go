package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/service"
	"github.com/uniadvisor/counsel-api/internal/utils"
)

// ShortlistHandler wires the shortlist routes.
type ShortlistHandler struct {
	service service.ShortlistService
	logger  zerolog.Logger
}

// NewShortlistHandler constructs the handler.
func NewShortlistHandler(service service.ShortlistService, logger zerolog.Logger) *ShortlistHandler {
	return &ShortlistHandler{
		service: service,
		logger:  logger.With().Str("component", "shortlist_handler").Logger(),
	}
}

// Register attaches shortlist endpoints to the router group.
func (h *ShortlistHandler) Register(router fiber.Router) {
	router.Post("", h.add)
	router.Get("", h.list)
	router.Post("/lock", h.setLock)
	router.Delete("/:id", h.remove)
}

func (h *ShortlistHandler) add(c *fiber.Ctx) error {
	var payload dto.ShortlistAddRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.Add(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "university shortlisted", entry)
}

func (h *ShortlistHandler) list(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "shortlist retrieved", entries)
}

func (h *ShortlistHandler) setLock(c *fiber.Ctx) error {
	var payload dto.ShortlistLockRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.SetLock(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	message := "shortlist entry unlocked"
	if payload.Lock {
		message = "shortlist entry locked"
	}
	return utils.SendSuccess(c, message, entry)
}

func (h *ShortlistHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Remove(c.Context(), userIDFromContext(c), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "shortlist entry removed", fiber.Map{"id": id})
}

func (h *ShortlistHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAlreadyShortlisted):
		return utils.SendError(c, fiber.StatusConflict, "university already in shortlist")
	case errors.Is(err, service.ErrEntryLocked):
		return utils.SendError(c, fiber.StatusConflict, "shortlist entry is locked; unlock it first")
	case errors.Is(err, service.ErrEntryNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "shortlist entry not found")
	case errors.Is(err, service.ErrUniversityNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "university not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
