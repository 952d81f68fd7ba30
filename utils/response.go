package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse writes the standard failure body.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// CurrentUserID returns the user id the auth middleware stored in Locals.
func CurrentUserID(c *fiber.Ctx) (int64, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return 0, errors.New("unauthorized: user_id missing in context")
	}
	id, ok := raw.(int64)
	if !ok {
		return 0, errors.New("server error: user_id has unexpected type")
	}
	return id, nil
}
