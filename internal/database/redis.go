package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/pageza/foodgram/backend/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisClientName identifies API connections in CLIENT LIST.
const RedisClientName = "foodgram-api"

// ErrRedisDisabled is returned by NewRedisClient when redis.enabled is off.
var ErrRedisDisabled = errors.New("redis is disabled")

// RedisOptions builds the client options from cfg. redis.url, when set,
// replaces host, port, password and db. Timeouts are short because every
// rate limit check sits on a request path.
func RedisOptions(cfg *config.Config) (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsed
	}

	opts.ClientName = RedisClientName
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond
	return opts, nil
}

// NewRedisClient connects to the Redis used for rate limiting.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled {
		return nil, ErrRedisDisabled
	}
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logrus.WithFields(logrus.Fields{
		"addr":       opts.Addr,
		"db":         opts.DB,
		"key_prefix": cfg.RedisKeyPrefix,
	}).Info("connected to Redis")
	return client, nil
}
