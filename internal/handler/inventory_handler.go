package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/service"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.ListProducts())
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var in model.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(c.Context(), in)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Producto agregado", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	product.ID = c.Params("id")

	updated, found, err := h.service.UpdateProduct(c.Context(), product)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if !found {
		// Missing ids are a silent no-op in the domain; report it to the API
		// caller without an error body.
		return c.SendStatus(204)
	}

	return c.JSON(fiber.Map{"message": "Producto actualizado", "data": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if h.service.DeleteProduct(c.Context(), c.Params("id")) {
		return c.JSON(fiber.Map{"message": "Producto eliminado"})
	}
	return c.SendStatus(204)
}
