package storage

import (
	"context"
	"sync"

	"bakery-pricing/internal/core/costing"
)

// MemoryStore 行程內的儲存，重啟後資料消失
type MemoryStore struct {
	mu   sync.RWMutex
	book costing.Book
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{book: costing.Book{}}
}

func (s *MemoryStore) Load(_ context.Context) (costing.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Migrate(), nil
}

func (s *MemoryStore) Save(_ context.Context, book costing.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book = book.Clone()
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
