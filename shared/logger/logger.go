package logger

import (
	"io"
	"os"
	"time"

	"litrato/config"
	"litrato/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger at trace level. It runs
// before the configuration is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// Configure applies LOG_LEVEL and, in production, swaps the console writer
// for one JSON object per line tagged with the app name.
func Configure(cfg *config.Config) {
	configure(cfg, os.Stdout)
}

func configure(cfg *config.Config, out io.Writer) {
	if cfg.Server.Env == constant.ServerEnvProduction {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.App.Name).Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.TraceLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Debug().Str("level", level.String()).Str("env", cfg.Server.Env).Msg("Logger configured")
}

// ErrorWithStack logs err with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
