package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns a connected client, or nil when url is empty or the
// server cannot be reached. A nil client makes every redis-backed feature
// a no-op.
func NewRedis(url string) *redis.Client {
	if url == "" {
		slog.Info("REDIS_URL not set, redis-backed features disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		slog.Warn("invalid REDIS_URL, redis-backed features disabled", "err", err)
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, redis-backed features disabled", "err", err)
		_ = client.Close()
		return nil
	}

	slog.Info("connected to redis", "addr", opts.Addr)
	return client
}
