package handler

import (
	"cost-calc-api/internal/model"
	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/money"

	"github.com/gofiber/fiber/v2"
)

type MaterialHandler struct {
	service service.MaterialService
}

func NewMaterialHandler(s service.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: s}
}

type materialDisplay struct {
	PurchasePrice string `json:"purchase_price"`
	UnitPrice     string `json:"unit_price"`
}

type materialResponse struct {
	model.Material
	Display materialDisplay `json:"display"`
}

func toMaterialResponse(m *model.Material) materialResponse {
	return materialResponse{
		Material: *m,
		Display: materialDisplay{
			PurchasePrice: money.Yen(m.PurchasePrice),
			UnitPrice:     money.UnitPrice(m.CalculatedUnitPrice),
		},
	}
}

// GET /api/v1/materials
func (h *MaterialHandler) GetMaterials(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	materials, err := h.service.List(c.UserContext(), ownerID)
	if err != nil {
		return respondError(c, err)
	}

	data := make([]materialResponse, 0, len(materials))
	for i := range materials {
		data = append(data, toMaterialResponse(&materials[i]))
	}
	return c.JSON(fiber.Map{"data": data})
}

// GET /api/v1/materials/:id
func (h *MaterialHandler) GetMaterial(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	m, err := h.service.Get(c.UserContext(), ownerID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": toMaterialResponse(m)})
}

// POST /api/v1/materials
func (h *MaterialHandler) CreateMaterial(c *fiber.Ctx) error {
	ownerID, err := getOwnerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.MaterialInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	m, err := h.service.Create(c.UserContext(), ownerID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Material created", "data": toMaterialResponse(m)})
}

// PUT /api/v1/materials/:id
func (h *MaterialHandler) UpdateMaterial(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	var req service.MaterialInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	m, err := h.service.Update(c.UserContext(), ownerID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Material updated", "data": toMaterialResponse(m)})
}

// DELETE /api/v1/materials/:id
func (h *MaterialHandler) DeleteMaterial(c *fiber.Ctx) error {
	ownerID, id, ok := ownerAndID(c)
	if !ok {
		return nil
	}

	if err := h.service.Delete(c.UserContext(), ownerID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Material deleted"})
}
