package realtime

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Prachiopenxcell/platform998_be/internal/logger"
)

// NewRedis creates the Redis client used for the dashboard stat cache and
// notification publishing.
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	logger.L().Info("redis client created", zap.String("addr", addr))
	return rdb
}
