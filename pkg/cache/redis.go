package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TryMightyAI/rampart/pkg/engine"
)

// Redis caches results in a shared Redis instance so a fleet of workers
// deduplicates analyses across processes. Backend errors degrade to
// cache misses; a broken Redis must never break analysis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis cache requires an address")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis cache unreachable at %s: %w", cfg.Addr, err)
	}

	return &Redis{client: client, ttl: cfg.TTL}, nil
}

// Get implements Cache. Any backend or decode error reads as a miss.
func (r *Redis) Get(ctx context.Context, key string) (engine.AnalysisResult, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] Redis cache get failed: %v", err)
		}
		return engine.AnalysisResult{}, false
	}

	var result engine.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Printf("[WARN] Redis cache entry corrupt, dropping %s: %v", key, err)
		_ = r.client.Del(ctx, key).Err()
		return engine.AnalysisResult{}, false
	}
	return result, true
}

// Set implements Cache. Failures are logged and dropped.
func (r *Redis) Set(ctx context.Context, key string, result engine.AnalysisResult) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("[WARN] Redis cache encode failed: %v", err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.Printf("[WARN] Redis cache set failed: %v", err)
	}
}

// Close implements Cache.
func (r *Redis) Close() error {
	return r.client.Close()
}
