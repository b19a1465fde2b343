package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery-pricing/internal/core/ai/cache"
	"bakery-pricing/internal/core/ai/provider"
	"bakery-pricing/internal/core/ai/queue"
	"bakery-pricing/internal/pkg/common"

	"go.uber.org/zap"
)

// Service AI 服務：快取、隊列與提供者的統一入口
type Service struct {
	provider  provider.Provider
	cache     *cache.Manager
	queue     *queue.Manager
	maxTokens int
}

// Option 服務選項
type Option func(*Service)

// WithMaxTokens 設定回應 token 上限
func WithMaxTokens(n int) Option {
	return func(s *Service) { s.maxTokens = n }
}

// NewService 創建 AI 服務；cache 可為 nil（停用）
func NewService(p provider.Provider, c *cache.Manager, q *queue.Manager, opts ...Option) *Service {
	s := &Service{
		provider: p,
		cache:    c,
		queue:    q,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizePrompt 統一 prompt 空白，確保快取 key 一致
func NormalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(prompt), " ")
}

// ProcessRequest 送出 JSON 模式的單輪請求
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*provider.Response, error) {
	prompt = NormalizePrompt(prompt)
	if prompt == "" {
		return nil, errors.New("empty prompt")
	}

	if val, err := s.cache.Get(ctx, prompt); err == nil && val != "" {
		return &provider.Response{Content: val, Model: s.provider.GetModel(), CacheHit: true}, nil
	}

	req := &provider.Request{
		Messages:  []provider.Message{{Role: "user", Content: prompt}},
		MaxTokens: s.maxTokens,
		JSONMode:  true,
	}

	start := time.Now()
	resp, err := s.queue.Submit(ctx, req)
	common.LogAICall(s.provider.GetModel(), time.Since(start), err, requestIDFrom(ctx))
	if err != nil {
		return nil, fmt.Errorf("ai request failed: %w", err)
	}

	if err := s.cache.Set(ctx, prompt, resp.Content); err != nil {
		common.LogWarn("快取寫入失敗", zap.Error(err))
	}

	return resp, nil
}

// Model 回傳目前使用的模型
func (s *Service) Model() string {
	return s.provider.GetModel()
}

type requestIDKey struct{}

// WithRequestID 將請求 ID 放入 context，供 AI 呼叫日誌使用
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
