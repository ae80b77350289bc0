package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cost-calc-api/internal/model"
	"cost-calc-api/internal/repository"
	"cost-calc-api/internal/router"
	"cost-calc-api/internal/service"
	"cost-calc-api/internal/ws"
	"cost-calc-api/pkg/config"
	"cost-calc-api/pkg/database"
	"cost-calc-api/pkg/jwt"
	"cost-calc-api/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Env
	cfg := config.Load()
	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	// 2. Setup Database
	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to connect to database")
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := model.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 4. Cost-rate settings are process-wide, loaded once
	settings := service.NewSettingsService(repository.NewSettingRepo(db), wsHub)
	current, err := settings.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}
	log.Info().
		Float64("target", current.TargetCostRate).
		Float64("warn", current.WarnCostRate).
		Float64("danger", current.DangerCostRate).
		Msg("Cost-rate settings loaded")

	// 5. Setup Fiber and routes
	app := router.NewApp()
	router.Setup(app, router.Deps{
		DB:       db,
		Hub:      wsHub,
		Signer:   jwt.NewSigner(cfg.JWTSecret, cfg.JWTTTL),
		Settings: settings,
	})

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stop()
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
