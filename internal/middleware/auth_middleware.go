package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-gestion-ws/internal/auth"
	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/ws"
	"go-gestion-ws/pkg/jwt"
)

// RequireAuth validates the bearer JWT and sets user info in context
func RequireAuth(directory auth.Directory) fiber.Handler {
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

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Strict session check against the directory
		user, err := directory.FindByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("user_email", claims.Email)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// RequireRoles gates a route on an allowed-role set. An empty set means any
// authenticated role. A role mismatch emits the access-denied notification
// and answers 403 with the home redirect.
func RequireRoles(notifier ws.Notifier, allowed ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(allowed) == 0 {
			return c.Next()
		}

		role, ok := c.Locals("user_role").(model.Role)
		if ok {
			for _, r := range allowed {
				if role == r {
					return c.Next()
				}
			}
		}

		if notifier != nil {
			notifier.Notify(ws.Notification{
				Title:       "Acceso denegado",
				Description: "No tienes permiso para acceder a esta página",
				Variant:     "destructive",
			})
		}
		return c.Status(403).JSON(fiber.Map{
			"error":    "Acceso denegado",
			"redirect": "/",
		})
	}
}
