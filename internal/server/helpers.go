package server

import (
	"errors"

	"echos/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil after seeing it so Fiber's
// ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. On failure it writes
// a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps service errors onto HTTP statuses. Validation maps
// to 400, unauthorized to 401, not found to 404, everything else to 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case models.HasCode(err, models.CodeValidation):
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.HasCode(err, models.CodeUnauthorized):
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	case models.HasCode(err, models.CodeNotFound):
		return models.RespondWithError(c, fiber.StatusNotFound, err)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
}

// respondNotFound is the single response for both "does not exist" and "not
// yours". Update and delete paths use it so existence never leaks.
func respondNotFound(c *fiber.Ctx, resource string, id uint) error {
	return models.RespondWithError(c, fiber.StatusNotFound,
		models.NewNotFoundError(resource, id))
}
