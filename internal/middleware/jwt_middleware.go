package middleware

import (
	"log"
	"strings"

	"ecommerce-analytics/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminRequired guards admin routes with a bearer token. When the token
// service has no secret the guard is disabled and every request passes.
func AdminRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !tokens.Enabled() {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals("subject", claims["sub"])
		return c.Next()
	}
}
