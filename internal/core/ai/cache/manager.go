package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"bakery-pricing/internal/infrastructure/config"
	"bakery-pricing/internal/metrics"
	"bakery-pricing/internal/pkg/common"

	"go.uber.org/zap"
)

// 快取錯誤
var (
	ErrMiss     = errors.New("cache miss")
	ErrDisabled = errors.New("cache disabled")
)

// Manager AI 回應快取，相同的食譜文字不重複呼叫模型
type Manager struct {
	cfg   config.CacheConfig
	mu    sync.Mutex
	store map[string]cacheEntry
	stats Stats
	now   func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// cacheEntry 快取條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// Stats 快取統計
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewManager 創建快取管理器；停用時回傳 nil，nil Manager 的方法皆可安全呼叫
func NewManager(cfg config.CacheConfig) *Manager {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &Manager{
		cfg:   cfg,
		store: make(map[string]cacheEntry),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)

	return m
}

// Get 依 prompt 取得快取值
func (m *Manager) Get(_ context.Context, prompt string) (string, error) {
	if m == nil {
		return "", ErrDisabled
	}

	key := Key(prompt)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[key]
	if !ok {
		m.stats.Misses++
		metrics.RecordCacheOperation("get", "miss")
		return "", ErrMiss
	}

	if m.now().After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.Evictions++
		m.stats.Misses++
		metrics.RecordCacheOperation("get", "expired")
		metrics.UpdateCacheSize(len(m.store))
		return "", ErrMiss
	}

	entry.lastAccess = m.now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.Hits++
	metrics.RecordCacheOperation("get", "hit")

	common.LogDebug("快取命中", zap.String("鍵", key[:12]))
	return entry.value, nil
}

// Set 儲存快取值，容量不足時先清除過期項目再淘汰最少使用者
func (m *Manager) Set(_ context.Context, prompt, value string) error {
	if m == nil {
		return nil
	}

	key := Key(prompt)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && len(m.store) >= m.cfg.MaxSize {
		m.cleanup()
		for len(m.store) >= m.cfg.MaxSize {
			m.evictLRU()
		}
	}

	now := m.now()
	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(m.cfg.TTL),
		lastAccess: now,
	}
	metrics.RecordCacheOperation("set", "ok")
	metrics.UpdateCacheSize(len(m.store))

	return nil
}

// Key 以 SHA-256 產生快取鍵
func Key(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "text:" + hex.EncodeToString(hash[:])
}

// startCleanup 定期清理過期快取
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
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

// cleanup 清理過期項目，呼叫者須持有鎖
func (m *Manager) cleanup() int {
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
		metrics.UpdateCacheSize(len(m.store))
		common.LogInfo("Cleaned up expired cache entries",
			zap.Int("count", count),
			zap.Int("remaining_size", len(m.store)),
		)
	}

	return count
}

// evictLRU 淘汰存取次數最少、最久未使用的項目，呼叫者須持有鎖
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	lowestCount := -1

	for key, entry := range m.store {
		if lowestCount < 0 ||
			entry.accessCount < lowestCount ||
			(entry.accessCount == lowestCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.Evictions++
		metrics.RecordCacheOperation("evict", "lru")
	}
}

// GetStats 獲取快取統計
func (m *Manager) GetStats() Stats {
	if m == nil {
		return Stats{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.stats
	stats.Size = len(m.store)
	stats.MaxSize = m.cfg.MaxSize
	return stats
}

// Close 停止清理協程並清空快取
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.closeOnce.Do(func() {
		close(m.stop)

		m.mu.Lock()
		m.store = make(map[string]cacheEntry)
		stats := m.stats
		m.mu.Unlock()

		metrics.UpdateCacheSize(0)
		common.LogInfo("快取管理員已關閉",
			zap.Int64("命中次數", stats.Hits),
			zap.Int64("未命中次數", stats.Misses),
			zap.Int64("淘汰次數", stats.Evictions),
		)
	})
	return nil
}
