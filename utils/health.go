package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last check.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Redis
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func setHealthStatus(h HealthStatus) {
	mu.Lock()
	currentHealth = h
	mu.Unlock()
}

// CheckHealth pings both dependencies once and stores the snapshot.
func CheckHealth(ctx context.Context, pingMongo, pingRedis func(context.Context) error) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	h := HealthStatus{
		Mongo:     pingMongo(ctx) == nil,
		Redis:     pingRedis(ctx) == nil,
		CheckedAt: time.Now(),
	}
	setHealthStatus(h)
	return h
}

// StartHealthMonitor checks immediately, then every interval until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, redisClient *redis.Client, mongoClient *mongo.Client) {
	pingMongo := func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
	pingRedis := func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		CheckHealth(ctx, pingMongo, pingRedis)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, pingMongo, pingRedis)
			}
		}
	}()
}
