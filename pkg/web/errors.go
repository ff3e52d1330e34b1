package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/campuscycles/gearbox/pkg/services"
)

// handleServiceError maps typed service errors onto the envelope. fallback
// is the generic message used when the error is an unexpected internal one;
// the underlying error is logged but never exposed.
func (h *APIHandlers) handleServiceError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case services.IsValidationError(err):
		return badRequest(c, err.Error())
	case services.IsNotFoundError(err):
		return notFound(c, err.Error())
	case services.IsConflictError(err):
		return conflict(c, err.Error())
	default:
		h.logger.ErrorContext(c.Context(), "Unhandled service error", "path", c.Path(), "error", err)

		return internalError(c, fallback)
	}
}

func badRequest(c fiber.Ctx, message string) error {
	return respond(c, fiber.StatusBadRequest, message, nil)
}

func notFound(c fiber.Ctx, message string) error {
	return respond(c, fiber.StatusNotFound, message, nil)
}

func conflict(c fiber.Ctx, message string) error {
	return respond(c, fiber.StatusConflict, message, nil)
}

func internalError(c fiber.Ctx, message string) error {
	return respond(c, fiber.StatusInternalServerError, message, nil)
}
