package router

import (
	"cost-calc-api/internal/handler"
	"cost-calc-api/internal/middleware"
	"cost-calc-api/internal/repository"
	"cost-calc-api/internal/service"
	"cost-calc-api/internal/ws"
	"cost-calc-api/pkg/jwt"
	"cost-calc-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deps are the shared pieces built by main before routing.
type Deps struct {
	DB       *gorm.DB
	Hub      *ws.Hub
	Signer   *jwt.Signer
	Settings service.SettingsService
}

// NewApp builds the fiber app with the standard middleware stack.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Cost Calc API v1.0",
	})

	app.Use(logger.Middleware()) // Logging request
	app.Use(recover.New())       // Panic recovery
	app.Use(cors.New())          // CORS

	return app
}

// Setup wires repositories, services and handlers and registers every route.
func Setup(app *fiber.App, d Deps) {
	// Initialize Repositories
	userRepo := repository.NewUserRepo(d.DB)
	materialRepo := repository.NewMaterialRepo(d.DB)
	menuRepo := repository.NewMenuRepo(d.DB)
	recipeRepo := repository.NewRecipeRepo(d.DB)
	dashboardRepo := repository.NewDashboardRepo(d.DB)

	// Initialize Services
	authService := service.NewAuthService(userRepo, d.Signer)
	materialService := service.NewMaterialService(d.DB, materialRepo, menuRepo, recipeRepo, d.Hub)
	menuService := service.NewMenuService(d.DB, menuRepo, recipeRepo, d.Settings, d.Hub)
	recipeService := service.NewRecipeService(d.DB, materialRepo, menuRepo, recipeRepo, d.Hub)
	dashboardService := service.NewDashboardService(dashboardRepo, menuRepo, d.Settings)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	materialHandler := handler.NewMaterialHandler(materialService)
	menuHandler := handler.NewMenuHandler(menuService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	settingsHandler := handler.NewSettingsHandler(d.Settings)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	calcHandler := handler.NewCalcHandler(d.Settings)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	SetupAuthRoutes(api, authHandler)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(d.Signer, userRepo))

	SetupMaterialRoutes(protected, materialHandler)
	SetupMenuRoutes(protected, menuHandler, recipeHandler)
	SetupSettingsRoutes(protected, settingsHandler)
	SetupCalcRoutes(protected, calcHandler)
	protected.Get("/dashboard/stats", dashboardHandler.GetDashboardStats)

	SetupWebSocket(app, d.Hub, d.Signer, userRepo)
}

// SetupWebSocket registers the change feed. Each connection only hears
// about its own owner's rows.
func SetupWebSocket(app *fiber.App, hub *ws.Hub, signer *jwt.Signer, userRepo repository.UserRepository) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", middleware.RequireQueryToken(signer, userRepo), websocket.New(func(c *websocket.Conn) {
		ownerID, err := ownerFromLocals(c.Locals("user_id"))
		if err != nil {
			c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid user"))
			c.Close()
			return
		}
		client := &ws.Client{Conn: c, OwnerID: ownerID}

		if !hub.Join(client) {
			c.Close()
			return
		}
		defer hub.Leave(client)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}

// ownerFromLocals reads the user ID set by the auth middleware.
func ownerFromLocals(v interface{}) (uuid.UUID, error) {
	userID, ok := v.(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return uuid.Parse(userID)
}
