// Package storage persists the recipe book. Every backend applies the category migration on load.
package storage

import (
	"context"
	"fmt"

	"bakery-pricing/internal/core/costing"
	"bakery-pricing/internal/infrastructure/config"
)

// Store 配方資料的持久化介面
type Store interface {
	// Load 讀取所有配方；尚無資料時回傳空 Book
	Load(ctx context.Context) (costing.Book, error)

	// Save 以整份快照覆寫
	Save(ctx context.Context, book costing.Book) error

	// Ping 檢查後端是否可用
	Ping(ctx context.Context) error

	// Close 釋放連線
	Close() error
}

// New 依設定建立對應的後端
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(), nil
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg)
	case config.BackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
