package handler

import (
	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/costing"

	"github.com/gofiber/fiber/v2"
)

// CalcHandler exposes the costing functions without touching storage.
// Inputs are coerced, never rejected, so malformed numbers come back as 0.
type CalcHandler struct {
	settings service.SettingsProvider
}

func NewCalcHandler(settings service.SettingsProvider) *CalcHandler {
	return &CalcHandler{settings: settings}
}

type unitPriceRequest struct {
	Price    costing.Number `json:"price"`
	Quantity costing.Number `json:"quantity"`
	Unit     string         `json:"unit"`
}

// POST /api/v1/calc/unit-price
func (h *CalcHandler) UnitPrice(c *fiber.Ctx) error {
	var req unitPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	qty := costing.Normalize(req.Quantity.Float(), req.Unit)
	return c.JSON(fiber.Map{
		"base_unit":           costing.BaseUnitFor(req.Unit),
		"normalized_quantity": qty,
		"unit_price":          costing.UnitPrice(req.Price.Float(), qty),
	})
}

type lineCostRequest struct {
	UsageAmount   costing.Number  `json:"usage_amount"`
	UsageUnit     string          `json:"usage_unit"`
	YieldRate     *costing.Number `json:"yield_rate"`
	BaseUnitPrice costing.Number  `json:"base_unit_price"`
}

// POST /api/v1/calc/line-cost
func (h *CalcHandler) LineCost(c *fiber.Ctx) error {
	var req lineCostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cost := costing.LineCost(
		req.UsageAmount.Float(),
		req.UsageUnit,
		costing.FloatOr(req.YieldRate, 100),
		req.BaseUnitPrice.Float(),
	)
	return c.JSON(fiber.Map{"line_cost": cost})
}

type metricsRequest struct {
	SalesPrice costing.Number `json:"sales_price"`
	TotalCost  costing.Number `json:"total_cost"`
}

// POST /api/v1/calc/metrics
func (h *CalcHandler) Metrics(c *fiber.Ctx) error {
	var req metricsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	return c.JSON(costing.CalculateMetrics(req.SalesPrice.Float(), req.TotalCost.Float()))
}

// evaluateRequest keeps the raw values: an unparsable cost rate must be
// reported as unrated rather than coerced to 0.
type evaluateRequest struct {
	CostRate   interface{}            `json:"cost_rate"`
	SalesPrice interface{}            `json:"sales_price"`
	Settings   *costing.SettingsInput `json:"settings"`
}

// POST /api/v1/calc/evaluate
func (h *CalcHandler) Evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	settings := h.settings.Current()
	if req.Settings != nil {
		settings = costing.SanitizeSettings(settings.Merge(*req.Settings))
	}
	return c.JSON(fiber.Map{
		"evaluation": costing.Evaluate(req.CostRate, req.SalesPrice, settings),
		"settings":   settings,
	})
}
