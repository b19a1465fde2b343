package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"bakery-pricing/internal/core/ai/provider"
	"bakery-pricing/internal/infrastructure/config"
	"bakery-pricing/internal/metrics"
	"bakery-pricing/internal/pkg/common"

	"go.uber.org/zap"
)

// job 隊列請求
type job struct {
	ctx    context.Context
	req    *provider.Request
	result chan Result
}

// Result 處理結果
type Result struct {
	Response *provider.Response
	Error    error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 以固定數量的 worker 呼叫 AI 提供者，限制同時進行的匯入
type Manager struct {
	cfg       config.QueueConfig
	provider  provider.Provider
	queue     chan *job
	done      chan struct{}
	wg        sync.WaitGroup
	processed int64
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewManager 創建隊列管理器並啟動 worker
func NewManager(cfg config.QueueConfig, p provider.Provider) *Manager {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 1
	}

	m := &Manager{
		cfg:      cfg,
		provider: p,
		queue:    make(chan *job, cfg.MaxSize),
		done:     make(chan struct{}),
	}

	for i := 0; i < cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	common.LogInfo("匯入隊列已啟動",
		zap.Int("workers", cfg.Workers),
		zap.Int("max_queue_size", cfg.MaxSize),
	)
	return m
}

// Submit 將請求放入隊列並等待結果
func (m *Manager) Submit(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	j := &job{
		ctx:    ctx,
		req:    req,
		result: make(chan Result, 1),
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil, common.ErrQueueClosed
	}
	select {
	case m.queue <- j:
		metrics.UpdateQueueLength(len(m.queue))
	default:
		m.mu.RUnlock()
		common.LogWarn("匯入隊列已滿", zap.Int("max_queue_size", m.cfg.MaxSize))
		return nil, common.ErrQueueFull
	}
	m.mu.RUnlock()

	select {
	case res := <-j.result:
		return res.Response, res.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// worker 從隊列取出請求並呼叫提供者
func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for j := range m.queue {
		metrics.UpdateQueueLength(len(m.queue))

		if err := j.ctx.Err(); err != nil {
			j.result <- Result{Error: err}
			continue
		}

		resp, err := m.provider.Generate(j.ctx, j.req)
		atomic.AddInt64(&m.processed, 1)
		if err != nil {
			common.LogDebug("worker 請求失敗", zap.Int("worker", id), zap.Error(err))
		}
		j.result <- Result{Response: resp, Error: err}
	}
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() Status {
	return Status{
		QueueLength:    len(m.queue),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		MaxQueueSize:   m.cfg.MaxSize,
		Workers:        m.cfg.Workers,
	}
}

// Close 停止接受新請求，等待已排入的請求處理完畢
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		close(m.queue)
		m.mu.Unlock()

		m.wg.Wait()
		close(m.done)
		common.LogInfo("匯入隊列已關閉", zap.Int64("processed", atomic.LoadInt64(&m.processed)))
	})
}

// Done 回傳關閉完成的通知
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
