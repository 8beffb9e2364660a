package repository

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/nppdeals/inventory-platform/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the configured instance and pings it once.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	rc := cfg.RedisConnect
	addr := net.JoinHostPort(rc.Host, rc.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: rc.Username,
		Password: rc.Password,
		DB:       rc.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	slog.Info("Connected to redis", slog.String("addr", addr), slog.Int("db", rc.DB))

	return client, nil
}
