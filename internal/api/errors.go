package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Bozotek/pickaguide-api/internal/service"
)

// serviceError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a 500 with the raw message.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidUpdate),
		errors.Is(err, service.ErrNoLocation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailNotConfirmed),
		errors.Is(err, service.ErrIncompleteProfile),
		errors.Is(err, service.ErrEmailBlacklisted),
		errors.Is(err, service.ErrNotGuide),
		errors.Is(err, service.ErrGuideUnavailable):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrTransport):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
