package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"foodcourt/internal/domain"
	applog "foodcourt/internal/log"
	"foodcourt/internal/services"
	"foodcourt/internal/validate"
)

// fail maps a service error to its status. Upstream failures echo the raw
// error to the client.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, validate.ErrInvalid):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized access"})
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, "access.denied", map[string]any{"action": action})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden access"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// badInput wraps a parser error so fail answers 400.
func badInput(c *fiber.Ctx, action string, err error) error {
	return fail(c, action, fmt.Errorf("%w: %v", validate.ErrInvalid, err))
}

func pathID(c *fiber.Ctx, name string) (string, error) {
	id, ok := validate.ID(c.Params(name))
	if !ok {
		return "", fmt.Errorf("%w: %s", validate.ErrInvalid, name)
	}
	return id, nil
}

// pathUID reads an owner id path param under the same rule the write
// routes apply to owner ids.
func pathUID(c *fiber.Ctx) (string, error) {
	return validate.UID(c.Params("uid"))
}
