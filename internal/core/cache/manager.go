package cache

import (
	"context"
	"sync"
	"time"

	"ingredient-engine/internal/infrastructure/config"
	"ingredient-engine/internal/pkg/common"

	"go.uber.org/zap"
)

// CacheManager 記憶體緩存管理器
type CacheManager struct {
	maxSize int
	ttl     time.Duration

	mu    sync.Mutex
	store map[string]cacheEntry
	stats Stats

	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// Stats 緩存統計
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Errors    int64 `json:"errors"`
}

// NewManager 創建新的緩存管理器
func NewManager(cfg config.CacheConfig) *CacheManager {
	m := &CacheManager{
		maxSize: cfg.MaxSize,
		ttl:     cfg.TTL,
		store:   make(map[string]cacheEntry),
		stop:    make(chan struct{}),
		now:     time.Now,
	}

	// 啟動清理過期緩存的協程
	if cfg.CleanupInterval > 0 {
		go m.startCleanup(cfg.CleanupInterval)
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *CacheManager) Get(_ context.Context, namespace, key string) (string, error) {
	k := generateKey(namespace, key)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[k]
	if !ok {
		m.stats.Misses++
		common.LogCacheMiss(namespace, key)
		return "", ErrCacheMiss
	}

	now := m.now()
	if now.After(entry.expiresAt) {
		delete(m.store, k)
		m.stats.Evictions++
		m.stats.Misses++
		common.LogCacheMiss(namespace, key)
		return "", ErrCacheMiss
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[k] = entry
	m.stats.Hits++
	common.LogCacheHit(namespace, key)
	return entry.value, nil
}

// Set 設置緩存值
func (m *CacheManager) Set(_ context.Context, namespace, key, value string) error {
	k := generateKey(namespace, key)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[k]; !exists && len(m.store) >= m.maxSize {
		// 先清理過期項目，仍然滿時執行 LRU 清理
		m.cleanup()
		if len(m.store) >= m.maxSize {
			m.evictLRU()
		}
		if len(m.store) >= m.maxSize {
			m.stats.Errors++
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := m.now()
	m.store[k] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(m.ttl),
		lastAccess: now,
	}
	return nil
}

// startCleanup 啟動清理過期緩存的協程
func (m *CacheManager) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// cleanup 清理過期的緩存，呼叫前需持有鎖
func (m *CacheManager) cleanup() int {
	now := m.now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
		}
	}

	if count > 0 {
		m.stats.Evictions += int64(count)
		common.LogDebug("已清理過期快取",
			zap.Int("數量", count),
			zap.Int("剩餘", len(m.store)),
		)
	}

	return count
}

// evictLRU 淘汰最少使用的項目，呼叫前需持有鎖
func (m *CacheManager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.Evictions++
	}
}

// Stats 獲取緩存統計信息
func (m *CacheManager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.Size = len(m.store)
	s.MaxSize = m.maxSize
	return s
}

// Close 停止清理協程並清空緩存
func (m *CacheManager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.Hits),
		zap.Int64("未命中次數", m.stats.Misses),
		zap.Int64("淘汰次數", m.stats.Evictions),
	)
	return nil
}
