package handler

import (
	"errors"

	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Helper untuk ambil owner dari JWT context (set by auth middleware)
func getOwnerID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userID)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// ownerAndID resolves the caller and the :id route parameter, writing the
// error response itself when either is unusable.
func ownerAndID(c *fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	id, err := parseID(c)
	if err != nil {
		c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

// respondError maps service errors onto status codes.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrMenuNotFound),
		errors.Is(err, service.ErrRecipeNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingToken):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}
