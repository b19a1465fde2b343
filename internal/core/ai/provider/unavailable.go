package provider

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured 未設定 AI 提供者
var ErrNotConfigured = errors.New("AI provider is not configured")

// Unavailable 在沒有 API Key 時使用的提供者，所有請求都回傳 ErrNotConfigured
type Unavailable struct{}

// Generate 一律失敗
func (Unavailable) Generate(ctx context.Context, req *Request) (*Response, error) {
	return nil, ErrNotConfigured
}

// GetModel 回傳空字串
func (Unavailable) GetModel() string { return "" }

// GetTimeout 回傳 0
func (Unavailable) GetTimeout() time.Duration { return 0 }

// Close 無動作
func (Unavailable) Close() error { return nil }
