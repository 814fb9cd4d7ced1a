package db

import (
	"backend-healthband/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis builds a client for the configured address. An empty address
// means the deployment runs without Redis and callers get nil.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
