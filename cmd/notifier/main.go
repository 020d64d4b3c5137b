package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"litrato/config"
	"litrato/infras/kafka"
	"litrato/infras/otel"
	"litrato/internal/events"
	"litrato/shared/logger"

	"github.com/rs/zerolog/log"
)

// notifier follows the booking event topics and hands every event to the
// notification channel. For now that channel is the structured log.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg, otel.New(cfg))
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	log.Info().Strs("events", events.Names).Msg("Notifier listening")

	events.Listen(ctx, cfg, client, func(key string, envelope events.Envelope) {
		log.Info().
			Str("event", envelope.Name).
			Str("key", key).
			Str("actor", envelope.Actor).
			Time("occurred_at", envelope.OccurredAt).
			Interface("payload", envelope.Payload).
			Msg("notify")
	})

	log.Info().Msg("Notifier stopped")
}
