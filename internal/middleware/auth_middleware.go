package middleware

import (
	"strings"

	"cost-calc-api/internal/repository"
	"cost-calc-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates the Bearer JWT and sets user info in context
func RequireAuth(signer *jwt.Signer, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		return authenticate(c, signer, userRepo, parts[1])
	}
}

// RequireQueryToken authenticates websocket upgrades, where browsers
// cannot set headers, from the ?token= query parameter.
func RequireQueryToken(signer *jwt.Signer, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}
		return authenticate(c, signer, userRepo, token)
	}
}

func authenticate(c *fiber.Ctx, signer *jwt.Signer, userRepo repository.UserRepository, token string) error {
	claims, err := signer.ValidateToken(token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	// tokens of deleted users are rejected
	if _, err := userRepo.FindByID(c.UserContext(), claims.UserID); err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "User not found"})
	}

	c.Locals("user_id", claims.UserID.String())
	c.Locals("user_email", claims.Email)
	c.Locals("user_name", claims.Name)

	return c.Next()
}
