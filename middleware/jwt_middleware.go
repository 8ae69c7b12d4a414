package middleware

import (
	"net/http"
	"strings"

	"todoweb/internal/util"

	"github.com/gofiber/fiber/v2"
)

// JwtAuthMiddleware guards the JSON API routes with a Bearer token.
func JwtAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header format must be Bearer {token}"})
		}

		token := parts[1]
		authorized, err := util.IsAuthorized(token, secret)
		if err != nil || !authorized {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Not authorized or invalid token"})
		}

		userID, err := util.ExtractIDFromToken(token, secret)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Could not extract user from token"})
		}

		// Store user ID in Locals for handlers to access
		c.Locals("x-user-id", userID)

		return c.Next()
	}
}

// APIUserID returns the user id stored by JwtAuthMiddleware.
func APIUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("x-user-id").(uint)
	return id
}
