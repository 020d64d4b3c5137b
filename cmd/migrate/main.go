package main

import (
	"os"

	"litrato/config"
	"litrato/helper"
	"litrato/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: migrate up|down|step-up|drop|version")
	}

	cfg := config.Get()
	direction := helper.Direction(os.Args[1])

	if err := helper.Migrate(cfg, direction); err != nil {
		log.Fatal().Err(err).Str("direction", string(direction)).Msg("Migration failed")
	}
}
