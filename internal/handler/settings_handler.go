package handler

import (
	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/costing"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(s service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Current()})
}

// PUT /api/v1/settings
// Absent fields keep their current value; the result is always sanitized.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req costing.SettingsInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	settings, err := h.service.Update(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Settings updated", "data": settings})
}

// POST /api/v1/settings/reset
func (h *SettingsHandler) ResetSettings(c *fiber.Ctx) error {
	settings, err := h.service.Reset(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Settings reset", "data": settings})
}
