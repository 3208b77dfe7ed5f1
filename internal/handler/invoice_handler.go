package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/service"
)

type InvoiceHandler struct {
	service service.InvoiceService
}

func NewInvoiceHandler(s service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

func (h *InvoiceHandler) GetInvoices(c *fiber.Ctx) error {
	return c.JSON(h.service.ListInvoices())
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	inv, ok := h.service.GetInvoice(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Factura no encontrada"})
	}
	return c.JSON(inv)
}

func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var in service.InvoiceInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	invoice, err := h.service.CreateInvoice(c.Context(), in)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Factura creada", "data": invoice})
}

func (h *InvoiceHandler) UpdateInvoice(c *fiber.Ctx) error {
	var invoice model.Invoice
	if err := c.BodyParser(&invoice); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	invoice.ID = c.Params("id")

	updated, found, err := h.service.UpdateInvoice(c.Context(), invoice)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if !found {
		return c.SendStatus(204)
	}

	return c.JSON(fiber.Map{"message": "Factura actualizada", "data": updated})
}

func (h *InvoiceHandler) DeleteInvoice(c *fiber.Ctx) error {
	if h.service.DeleteInvoice(c.Context(), c.Params("id")) {
		return c.JSON(fiber.Map{"message": "Factura eliminada"})
	}
	return c.SendStatus(204)
}

// ExportPDF streams the invoice as a PDF attachment
// GET /api/v1/invoices/:id/pdf
func (h *InvoiceHandler) ExportPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.service.ExportPDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Factura no encontrada"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "No se pudo generar el archivo PDF"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="factura-%s.pdf"`, id))
	return c.Send(doc)
}
