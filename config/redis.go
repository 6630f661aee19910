package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared cache behind the availability endpoints. It
// stays nil when REDIS_ADDR is unset; callers treat nil as cache-off and
// fall back to the in-process cache.
var RedisClient *redis.Client

func InitRedis() {
	addr := GetEnv("REDIS_ADDR", "")
	if addr == "" {
		RedisClient = nil
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASS", ""),
		DB:       GetEnvInt("REDIS_DB", 0),
	})
}

// RedisCtx is the context for cache reads and writes. Misses are cheap, so
// no deadline is attached.
func RedisCtx() context.Context {
	return context.Background()
}
