package main

import (
	"context"
	"flag"

	"cost-calc-api/internal/model"
	"cost-calc-api/internal/repository"
	"cost-calc-api/internal/service"
	"cost-calc-api/pkg/config"
	"cost-calc-api/pkg/costing"
	"cost-calc-api/pkg/database"
	"cost-calc-api/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	purge := flag.Bool("purge", false, "delete the stored row instead of writing defaults")
	flag.Parse()

	// 1. Load Env
	cfg := config.Load()
	logger.Init(cfg.LogLevel, true)

	// 2. Setup Database
	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx := context.Background()
	repo := repository.NewSettingRepo(db)

	// 3. Purge: the API falls back to defaults on next start
	if *purge {
		if err := repo.Delete(ctx, costing.SettingsKey); err != nil {
			log.Fatal().Err(err).Msg("Failed to delete stored settings")
		}
		log.Info().Msg("Stored settings deleted")
		return
	}

	// 4. Write defaults
	settings, err := service.NewSettingsService(repo, nil).Reset(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to reset settings")
	}

	log.Info().
		Float64("target", settings.TargetCostRate).
		Float64("warn", settings.WarnCostRate).
		Float64("danger", settings.DangerCostRate).
		Msg("Settings reset to defaults")
}
