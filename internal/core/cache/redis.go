package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ingredient-engine/internal/infrastructure/config"
	"ingredient-engine/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 為後端的快取
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 建立 Redis 快取並測試連接
func NewRedisStore(cfg config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連接", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.TTL))
	return NewRedisStoreWithClient(client, cfg.TTL), nil
}

// NewRedisStoreWithClient 使用現有的 client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, namespace, key string) (string, error) {
	value, err := s.client.Get(ctx, generateKey(namespace, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.LogCacheMiss(namespace, key)
			return "", ErrCacheMiss
		}
		logStoreError("get", err)
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	common.LogCacheHit(namespace, key)
	return value, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, namespace, key, value string) error {
	if err := s.client.Set(ctx, generateKey(namespace, key), value, s.ttl).Err(); err != nil {
		logStoreError("set", err)
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
