package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-gestion-ws/internal/auth"
)

type AuthHandler struct {
	provider *auth.Provider
}

func NewAuthHandler(provider *auth.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, ok := h.provider.Login(c.Context(), req.Email, req.Password)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "Correo electrónico o contraseña incorrectos"})
	}

	return c.JSON(response)
}

// Logout clears the current session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.provider.Logout(c.Context())
	return c.JSON(fiber.Map{"message": "Sesión cerrada"})
}

// Session returns the current session state
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	if h.provider.Loading() {
		return c.JSON(fiber.Map{"loading": true})
	}
	session := h.provider.Current()
	if session == nil {
		return c.JSON(fiber.Map{"loading": false, "authenticated": false})
	}
	return c.JSON(fiber.Map{
		"loading":       false,
		"authenticated": true,
		"user":          session.User.Public(),
		"role":          session.Role,
	})
}
