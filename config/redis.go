package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the process-wide client used by the notification feed. It is nil when Redis is
// not configured or not reachable.
var RedisClient *redis.Client

// InitRedis connects to REDIS_ADDR. RedisClient stays nil when it is unset or not reachable.
func InitRedis() {
	addr := GetEnv("REDIS_ADDR", "")
	if addr == "" {
		RedisClient = nil
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASS", ""),
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(RedisCtx(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		RedisClient = nil
		return
	}
	RedisClient = client
}

func RedisCtx() context.Context {
	return context.Background()
}
