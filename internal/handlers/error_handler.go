package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nikhilsahni/resume-radar/internal/apperrors"
)

// ErrorHandler is the single place pipeline failures are mapped to transport
// responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode()).JSON(fiber.Map{
			"error": appErr.Message,
			"code":  appErr.StatusCode(),
		})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
