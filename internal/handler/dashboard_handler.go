package handler

import (
	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/money"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	d, err := h.service.GetDashboard(c.UserContext(), ownerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(fiber.Map{
		"data": d,
		"display": fiber.Map{
			"average_cost_rate": money.Percent(d.Stats.AverageCostRate),
			"total_sales":       money.Yen(d.Stats.TotalSales),
			"total_cost":        money.Yen(d.Stats.TotalCost),
		},
	})
}
