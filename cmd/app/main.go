package main

import (
	"litrato/config"
	"litrato/di"
	"litrato/helper"
	"litrato/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Litrato API
// @version 1.0
// @description Photobooth bookings: packages, booking requests, confirmed bookings and the public availability calendar.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Migrate(cfg, helper.Up); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
