package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bakery-pricing/internal/core/ai/provider"
	"bakery-pricing/internal/infrastructure/config"
	"bakery-pricing/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	err     error
}

func (f *fakeProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: req.Messages[0].Content, Model: "fake"}, nil
}

func (f *fakeProvider) GetModel() string { return "fake" }
func (f *fakeProvider) GetTimeout() time.Duration { return time.Second }
func (f *fakeProvider) Close() error { return nil }

func request(content string) *provider.Request {
	return &provider.Request{Messages: []provider.Message{{Role: "user", Content: content}}}
}

func TestManager_Submit(t *testing.T) {
	p := &fakeProvider{}
	m := NewManager(config.QueueConfig{Workers: 2, MaxSize: 4}, p)
	defer m.Close()

	resp, err := m.Submit(context.Background(), request("flour"))
	require.NoError(t, err)
	assert.Equal(t, "flour", resp.Content)
	assert.Equal(t, int64(1), m.GetQueueStatus().ProcessedCount)
}

func TestManager_ProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1}, p)
	defer m.Close()

	_, err := m.Submit(context.Background(), request("flour"))
	assert.EqualError(t, err, "boom")
}

func TestManager_QueueFull(t *testing.T) {
	p := &fakeProvider{release: make(chan struct{})}
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1}, p)

	ctx, cancel := context.WithCancel(context.Background())

	// 第一個請求佔住 worker
	go func() { _, _ = m.Submit(ctx, request("one")) }()
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.calls == 1
	}, time.Second, 5*time.Millisecond)

	// 第二個請求佔住隊列
	go func() { _, _ = m.Submit(ctx, request("two")) }()
	require.Eventually(t, func() bool { return m.GetQueueStatus().QueueLength == 1 }, time.Second, 5*time.Millisecond)

	_, err := m.Submit(context.Background(), request("three"))
	assert.ErrorIs(t, err, common.ErrQueueFull)

	cancel()
	close(p.release)
	m.Close()
}

func TestManager_Closed(t *testing.T) {
	m := NewManager(config.QueueConfig{Workers: 1, MaxSize: 1}, &fakeProvider{})
	m.Close()

	_, err := m.Submit(context.Background(), request("flour"))
	assert.ErrorIs(t, err, common.ErrQueueClosed)

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}
