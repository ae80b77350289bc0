package handler

import (
	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/money"

	"github.com/gofiber/fiber/v2"
)

type RecipeHandler struct {
	service service.RecipeService
}

func NewRecipeHandler(s service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: s}
}

type lineDisplay struct {
	UnitPrice string `json:"unit_price"`
	LineCost  string `json:"line_cost"`
}

type lineResponse struct {
	service.LineDetail
	Display lineDisplay `json:"display"`
}

func toLineResponse(l *service.LineDetail) lineResponse {
	return lineResponse{
		LineDetail: *l,
		Display: lineDisplay{
			UnitPrice: money.UnitPrice(l.UnitPrice),
			LineCost:  money.Yen(l.LineCost),
		},
	}
}

func toLineResponses(lines []service.LineDetail) []lineResponse {
	out := make([]lineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, toLineResponse(&lines[i]))
	}
	return out
}

// GET /api/v1/menus/:id/recipes
func (h *RecipeHandler) GetRecipes(c *fiber.Ctx) error {
	ownerID, menuID, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	lines, err := h.service.ListByMenu(c.UserContext(), ownerID, menuID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": toLineResponses(lines)})
}

// POST /api/v1/menus/:id/recipes
func (h *RecipeHandler) AddRecipe(c *fiber.Ctx) error {
	ownerID, menuID, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	var req service.RecipeInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	line, err := h.service.Add(c.UserContext(), ownerID, menuID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Recipe line added", "data": toLineResponse(line)})
}

// PUT /api/v1/recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	var req service.RecipeUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	line, err := h.service.Update(c.UserContext(), ownerID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Recipe line updated", "data": toLineResponse(line)})
}

// DELETE /api/v1/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.UserContext(), ownerID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Recipe line deleted"})
}
