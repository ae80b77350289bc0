package router

import (
	"cost-calc-api/internal/handler"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(api fiber.Router, h *handler.AuthHandler) {
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/validate-token", h.ValidateToken)
}

// SetupMaterialRoutes sets up the material routes.
func SetupMaterialRoutes(protected fiber.Router, h *handler.MaterialHandler) {
	materials := protected.Group("/materials")
	materials.Get("", h.GetMaterials)
	materials.Post("", h.CreateMaterial)
	materials.Get("/:id", h.GetMaterial)
	materials.Put("/:id", h.UpdateMaterial)
	materials.Delete("/:id", h.DeleteMaterial)
}

// SetupMenuRoutes sets up menus and their recipe lines.
func SetupMenuRoutes(protected fiber.Router, menus *handler.MenuHandler, recipes *handler.RecipeHandler) {
	m := protected.Group("/menus")
	m.Get("", menus.GetMenus)
	m.Post("", menus.CreateMenu)
	m.Get("/:id", menus.GetMenu)
	m.Put("/:id", menus.UpdateMenu)
	m.Delete("/:id", menus.DeleteMenu)
	m.Post("/:id/recalculate", menus.RecalculateMenu)
	m.Get("/:id/recipes", recipes.GetRecipes)
	m.Post("/:id/recipes", recipes.AddRecipe)

	r := protected.Group("/recipes")
	r.Put("/:id", recipes.UpdateRecipe)
	r.Delete("/:id", recipes.DeleteRecipe)
}

// SetupSettingsRoutes sets up the cost-rate threshold routes.
func SetupSettingsRoutes(protected fiber.Router, h *handler.SettingsHandler) {
	s := protected.Group("/settings")
	s.Get("", h.GetSettings)
	s.Put("", h.UpdateSettings)
	s.Post("/reset", h.ResetSettings)
}

// SetupCalcRoutes sets up the stateless calculator routes.
func SetupCalcRoutes(protected fiber.Router, h *handler.CalcHandler) {
	calc := protected.Group("/calc")
	calc.Post("/unit-price", h.UnitPrice)
	calc.Post("/line-cost", h.LineCost)
	calc.Post("/metrics", h.Metrics)
	calc.Post("/evaluate", h.Evaluate)
}
