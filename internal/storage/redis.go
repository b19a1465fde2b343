package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bakery-pricing/internal/core/costing"
	"bakery-pricing/internal/infrastructure/config"
	"bakery-pricing/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

// RedisStore 以單一 key 保存整份配方快照（msgpack 編碼）
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore 創建 Redis 儲存並測試連線
func NewRedisStore(ctx context.Context, cfg config.StorageConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 儲存已連線", zap.String("addr", cfg.RedisAddr), zap.String("key", cfg.RedisKey))

	return &RedisStore{client: client, key: cfg.RedisKey}, nil
}

func (s *RedisStore) Load(ctx context.Context) (costing.Book, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return costing.Book{}, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

func (s *RedisStore) Save(ctx context.Context, book costing.Book) error {
	data, err := EncodeSnapshot(book)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// EncodeSnapshot 以 msgpack 編碼配方快照
func EncodeSnapshot(book costing.Book) ([]byte, error) {
	data, err := msgpack.Marshal(map[string]costing.RecipeState(book))
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot 解碼快照並套用遷移；也接受舊版的 JSON 快照
func DecodeSnapshot(data []byte) (costing.Book, error) {
	book := costing.Book{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return book, nil
	}

	// msgpack 的 map 不會以 '{' 開頭
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &book); err != nil {
			return nil, fmt.Errorf("failed to decode JSON snapshot: %w", err)
		}
		return book.Migrate(), nil
	}

	var raw map[string]costing.RecipeState
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return costing.Book(raw).Migrate(), nil
}
