package redis

import (
	"context"
	"net"
	"time"

	"litrato/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New connects to the primary node. Redis backs the read caches and the rate
// limiter only, so the service refuses to start without it rather than
// running with every request hitting postgres.
func New(cfg *config.Config) *goRedis.Client {
	primary := cfg.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:         net.JoinHostPort(primary.Host, primary.Port),
		Password:     primary.Password,
		DB:           primary.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", client.Options().Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("addr", client.Options().Addr).
		Msg("Connected to Redis")

	return client
}
