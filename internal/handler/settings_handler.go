package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(s service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.service.Get(c.Context()))
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings model.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Update(c.Context(), settings); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Configuración guardada", "data": settings})
}

// ResetDatabase wipes all domain collections. Admin only.
// POST /api/v1/settings/reset-database
func (h *SettingsHandler) ResetDatabase(c *fiber.Ctx) error {
	h.service.ResetDatabase(c.Context())
	return c.JSON(fiber.Map{"message": "Base de datos reiniciada"})
}
