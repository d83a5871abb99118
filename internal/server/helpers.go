package server

import (
	"errors"
	"strconv"

	"scribe/internal/forms"
	"scribe/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the helper already wrote an error response
// and the handler should simply return nil.
var errResponseWritten = errors.New("response already written")

// parseID extracts and validates a numeric route parameter. On failure it
// writes the 400 response itself and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param+" parameter"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parsePage reads the ?page= query parameter. Anything missing or malformed
// falls back to page 1; out-of-range values are clamped downstream by the
// feed composer rather than rejected here.
func parsePage(c *fiber.Ctx) int {
	raw := c.Query("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// currentUserID returns the authenticated user's ID. Handlers behind
// AuthRequired can rely on the local being set.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// respondServiceError translates service and repository errors into HTTP
// responses. Validation failures come back as 422 with per-field messages so
// clients can re-render the submitted form.
func respondServiceError(c *fiber.Ctx, err error) error {
	if fieldErrs, ok := forms.AsFieldErrors(err); ok {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewFieldValidationError(fieldErrs))
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "FORBIDDEN":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity, appErr)
		}
	}

	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
