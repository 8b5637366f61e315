package handlers

import (
	"errors"
	"log"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to an HTTP status by its kind, never by
// matching message text.
func respondError(c *fiber.Ctx, err error, message string) error {
	log.Printf("%s: %v", message, err)

	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrReviewExists),
		errors.Is(err, services.ErrImageRequired),
		errors.As(err, &validationErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}

// currentUserID returns the authenticated user's ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// isAdmin reports whether the authenticated user carries the admin role.
func isAdmin(c *fiber.Ctx) bool {
	roles, ok := c.Locals("roles").([]interface{})
	if !ok {
		return false
	}
	for _, r := range roles {
		if s, ok := r.(string); ok && s == "admin" {
			return true
		}
	}
	return false
}
