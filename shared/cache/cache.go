package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"litrato/config"
	"litrato/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 200
)

// RedisCache stores JSON values under keys prefixed with the configured
// namespace, so several deployments can share one redis database.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, ttlSeconds int) error
	Get(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Clear drops every key matching a glob pattern such as "package:gets*".
	Clear(ctx context.Context, pattern string) error
	// Incr bumps a counter and starts its expiry on the first hit. It backs
	// the fixed-window rate limiter.
	Incr(ctx context.Context, key string, windowSeconds int) (int64, error)
}

type redisCache struct {
	client    *redis.Client
	namespace string
	otel      otel.Otel
}

func NewRedisCache(client *redis.Client, cfg *config.Config, ot otel.Otel) RedisCache {
	namespace := cfg.Cache.Namespace
	if namespace != "" {
		namespace += ":"
	}

	return &redisCache{
		client:    client,
		namespace: namespace,
		otel:      ot,
	}
}

func (c *redisCache) key(key string) string {
	return c.namespace + key
}

func (c *redisCache) Save(ctx context.Context, key string, value any, ttlSeconds int) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var payload []byte

	if str, ok := value.(string); ok {
		payload = []byte(str)
	} else if payload, err = json.Marshal(value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache value")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = c.client.Set(ctx, c.key(key), payload, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Msg("cache saved")

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			scope.TraceError(err)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if str, ok := value.(*string); ok {
		*str = string(raw)

		return nil
	}

	if err = json.Unmarshal(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache value")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = c.client.Del(ctx, c.key(key)).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	iter := c.client.Scan(ctx, 0, c.key(pattern), scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to unlink cache keys: %w", err)
		}

		batch = batch[:0]

		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())

		if len(batch) == scanBatch {
			if err = flush(); err != nil {
				return err
			}
		}
	}

	if err = iter.Err(); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to scan cache keys")

		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return flush()
}

func (c *redisCache) Incr(ctx context.Context, key string, windowSeconds int) (count int64, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Incr")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var incr *redis.IntCmd

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, c.key(key))
		pipe.ExpireNX(ctx, c.key(key), time.Duration(windowSeconds)*time.Second)

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	return incr.Val(), nil
}
