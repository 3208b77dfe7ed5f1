package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"go-gestion-ws/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDashboardStats returns overview statistics
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetDashboardStats())
}

// GetMonthlySales returns the per-month sales series for charts
// Query params: year (default current year)
func (h *ReportHandler) GetMonthlySales(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year", ""))
	if err != nil || year <= 0 {
		year = time.Now().Year()
	}

	return c.JSON(fiber.Map{
		"year": year,
		"data": h.service.GetMonthlySales(year),
	})
}

// GetCategoryDistribution returns product counts per category
func (h *ReportHandler) GetCategoryDistribution(c *fiber.Ctx) error {
	return c.JSON(h.service.GetCategoryDistribution())
}

// GetTopClients returns the best clients by purchase total
// Query params: limit (default 5)
func (h *ReportHandler) GetTopClients(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}
	return c.JSON(h.service.GetTopClients(limit))
}
