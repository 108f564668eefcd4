package server

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/apperrors"
)

// ErrorHandler renders every error as {"success": false, "error", "code"}.
// Server errors are logged with their cause and answered generically.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server Error"

	var appErr *apperrors.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.Kind.HTTPStatus()
		message = appErr.Message
		if appErr.Kind == apperrors.KindServer || appErr.Kind == apperrors.KindUnavailable {
			log.Printf("[server] %s %s: %v", c.Method(), c.Path(), err)
		}
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Printf("[server] %s %s: unexpected error: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}
