package handler

import (
	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/money"

	"github.com/gofiber/fiber/v2"
)

type MenuHandler struct {
	service service.MenuService
}

func NewMenuHandler(s service.MenuService) *MenuHandler {
	return &MenuHandler{service: s}
}

type menuDisplay struct {
	SalesPrice  string `json:"sales_price"`
	TotalCost   string `json:"total_cost"`
	GrossProfit string `json:"gross_profit"`
}

type menuResponse struct {
	service.MenuView
	Display menuDisplay `json:"display"`
}

type menuDetailResponse struct {
	menuResponse
	Lines []lineResponse `json:"lines"`
}

func toMenuResponse(v *service.MenuView) menuResponse {
	return menuResponse{
		MenuView: *v,
		Display: menuDisplay{
			SalesPrice:  money.Yen(v.SalesPrice),
			TotalCost:   money.Yen(v.TotalCost),
			GrossProfit: money.Yen(v.GrossProfit),
		},
	}
}

// GET /api/v1/menus
func (h *MenuHandler) GetMenus(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	menus, err := h.service.List(c.UserContext(), ownerID)
	if err != nil {
		return respondError(c, err)
	}

	data := make([]menuResponse, 0, len(menus))
	for i := range menus {
		data = append(data, toMenuResponse(&menus[i]))
	}
	return c.JSON(fiber.Map{"data": data})
}

// GET /api/v1/menus/:id
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	d, err := h.service.Get(c.UserContext(), ownerID, id)
	if err != nil {
		return respondError(c, err)
	}

	resp := menuDetailResponse{
		menuResponse: toMenuResponse(&d.MenuView),
		Lines:        toLineResponses(d.Lines),
	}
	return c.JSON(fiber.Map{"data": resp})
}

// POST /api/v1/menus
func (h *MenuHandler) CreateMenu(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.MenuInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	v, err := h.service.Create(c.UserContext(), ownerID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Menu created", "data": toMenuResponse(v)})
}

// PUT /api/v1/menus/:id
func (h *MenuHandler) UpdateMenu(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	var req service.MenuInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	v, err := h.service.Update(c.UserContext(), ownerID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Menu updated", "data": toMenuResponse(v)})
}

// DELETE /api/v1/menus/:id
func (h *MenuHandler) DeleteMenu(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.UserContext(), ownerID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Menu deleted"})
}

// POST /api/v1/menus/:id/recalculate
func (h *MenuHandler) RecalculateMenu(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	v, err := h.service.Recalculate(c.UserContext(), ownerID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": toMenuResponse(v)})
}
