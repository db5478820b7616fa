package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"ingredient-engine/internal/infrastructure/config"
	"ingredient-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrCacheMiss 快取中沒有對應的值
var ErrCacheMiss = errors.New("cache miss")

// Store 以命名空間區分的字串快取
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Close() error
}

// NewStore 依設定選擇快取後端；停用時回傳 no-op 實作
func NewStore(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("快取已停用")
		return NopStore{}, nil
	}

	switch cfg.Backend {
	case "redis":
		return NewRedisStore(cfg)
	case "memory", "":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// NopStore 永遠未命中的快取
type NopStore struct{}

func (NopStore) Get(context.Context, string, string) (string, error) { return "", ErrCacheMiss }

func (NopStore) Set(context.Context, string, string, string) error { return nil }

func (NopStore) Close() error { return nil }

// generateKey 生成緩存鍵
func generateKey(namespace, key string) string {
	hash := sha256.Sum256([]byte(key))
	return namespace + ":" + hex.EncodeToString(hash[:])
}

func logStoreError(op string, err error) {
	common.LogWarn("快取操作失敗", zap.String("op", op), zap.Error(err))
}
