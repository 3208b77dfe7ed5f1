package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/service"
)

type ClientHandler struct {
	service service.ClientService
}

func NewClientHandler(s service.ClientService) *ClientHandler {
	return &ClientHandler{service: s}
}

func (h *ClientHandler) GetClients(c *fiber.Ctx) error {
	return c.JSON(h.service.ListClients())
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var in model.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	client, err := h.service.CreateClient(c.Context(), in)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Cliente agregado", "data": client})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	var client model.Client
	if err := c.BodyParser(&client); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	client.ID = c.Params("id")

	updated, found, err := h.service.UpdateClient(c.Context(), client)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if !found {
		return c.SendStatus(204)
	}

	return c.JSON(fiber.Map{"message": "Cliente actualizado", "data": updated})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	if h.service.DeleteClient(c.Context(), c.Params("id")) {
		return c.JSON(fiber.Map{"message": "Cliente eliminado"})
	}
	return c.SendStatus(204)
}
