package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"creatives/internal/config"
	applog "creatives/internal/log"
)

// warnThreshold is the attempt count after which retries are logged as errors.
const warnThreshold = 3

type retryConfig struct {
	maxWait      time.Duration
	pingTimeout  time.Duration
	initialWait  time.Duration
	totalTimeout time.Duration
}

func validateOptions(cfg config.RedisConfig) error {
	if cfg.ConnectTimeout <= 0 {
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", cfg.ConnectTimeout)
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("RetryInterval must be > 0, got %v", cfg.RetryInterval)
	}
	if cfg.MaxWait <= 0 {
		return fmt.Errorf("MaxWait must be > 0, got %v", cfg.MaxWait)
	}
	if cfg.PingTimeout <= 0 {
		return fmt.Errorf("PingTimeout must be > 0, got %v", cfg.PingTimeout)
	}
	return nil
}

// Connect creates a redis client and pings it until it answers or
// ConnectTimeout elapses, backing off exponentially between attempts.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if err := validateOptions(cfg); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	retry := retryConfig{
		maxWait:      cfg.MaxWait,
		pingTimeout:  cfg.PingTimeout,
		initialWait:  cfg.RetryInterval,
		totalTimeout: cfg.ConnectTimeout,
	}

	if err := connectWithRetry(ctx, client, cfg.Addr, retry); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func connectWithRetry(parent context.Context, client *redis.Client, addr string, retry retryConfig) error {
	ctx, cancel := context.WithTimeout(parent, retry.totalTimeout)
	defer cancel()

	applog.Info(ctx, "connecting to redis", "addr", addr, "timeout", retry.totalTimeout.String())
	attempt := 0
	wait := retry.initialWait

	for {
		attempt++

		pingCtx, pingCancel := context.WithTimeout(ctx, retry.pingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				applog.Warn(ctx, "connected to redis after retry", "addr", addr, "attempts", attempt)
			} else {
				applog.Info(ctx, "connected to redis", "addr", addr)
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			applog.Error(ctx, "redis connection timed out", "addr", addr, "attempts", attempt, "error", err)
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				addr, attempt, retry.totalTimeout, err)
		case <-timer.C:
			if attempt >= warnThreshold {
				applog.Error(ctx, "redis still unavailable", "addr", addr, "attempt", attempt, "next_retry_in", wait.String(), "error", err)
			} else {
				applog.Warn(ctx, "redis not ready, retrying", "addr", addr, "attempt", attempt, "next_retry_in", wait.String(), "error", err)
			}
			wait = nextWait(wait, retry.maxWait)
		}
	}
}

func nextWait(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}
