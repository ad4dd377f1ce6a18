// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"skischool/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// LockClient is the Redis client holding assignment locks.
var LockClient *redis.Client

// InitRedis initializes the lock client (REDIS_LOCK_DB).
func InitRedis() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LockClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Locks): %v", err)
	}
}

// GetLockClient returns the lock client, connecting on first use.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitRedis()
	}
	return LockClient
}

// QueueRedisOpt returns the asynq connection for the task queue (REDIS_QUEUE_DB).
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
