package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/config"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

// RateLimitRepository counts sign-in attempts per username over a sliding
// window kept in a redis sorted set.
type RateLimitRepository interface {
	AllowLogin(ctx context.Context, username string) (models.LoginDecision, error)
}

type RateLimitOption func(*loginLimiter)

func WithRateClock(now func() time.Time) RateLimitOption {
	return func(l *loginLimiter) {
		l.now = now
	}
}

type loginLimiter struct {
	client redis.Cmdable
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateConfig, opts ...RateLimitOption) RateLimitRepository {
	l := &loginLimiter{client: client, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoginAttemptsKey is case-insensitive so "Admin" and "admin" share a budget.
func LoginAttemptsKey(prefix, username string) string {
	return prefix + ":" + strings.ToLower(strings.TrimSpace(username))
}

// AllowLogin records the attempt and reports whether it fits the window.
// Scores are unix milliseconds; every attempt gets its own member.
func (l *loginLimiter) AllowLogin(ctx context.Context, username string) (models.LoginDecision, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := LoginAttemptsKey(l.cfg.KeyPrefix, username)
	now := l.now()
	window := l.cfg.WindowSize

	var count *redis.IntCmd
	var oldest *redis.ZSliceCmd

	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(now.Add(-window).UnixMilli(), 10))
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
		count = pipe.ZCard(ctx, key)
		oldest = pipe.ZRangeWithScores(ctx, key, 0, 0)
		pipe.PExpire(ctx, key, window)
		return nil
	})
	if err != nil {
		logger.Error("Login rate limit pipeline failed", slog.String("key", key), slog.Any("error", err))
		return models.LoginDecision{}, fmt.Errorf("login rate limit for %q: %w", username, err)
	}

	attempts := count.Val()
	if attempts <= l.cfg.MaxAttempts {
		return models.LoginDecision{Allowed: true, Remaining: int(l.cfg.MaxAttempts - attempts)}, nil
	}

	retryAfter := window
	if scores := oldest.Val(); len(scores) > 0 {
		first := time.UnixMilli(int64(scores[0].Score))
		retryAfter = max(first.Add(window).Sub(now), 0)
	}

	logger.Warn("Login rate limit exceeded", slog.String("username", username), slog.Int64("attempts", attempts), slog.Duration("retryAfter", retryAfter))

	return models.LoginDecision{RetryAfter: retryAfter}, nil
}
