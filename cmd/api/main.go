package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-pricing/internal/api"
	"bakery-pricing/internal/core/ai/cache"
	"bakery-pricing/internal/core/ai/openrouter"
	"bakery-pricing/internal/core/ai/provider"
	"bakery-pricing/internal/core/ai/queue"
	"bakery-pricing/internal/core/ai/service"
	"bakery-pricing/internal/core/bakery"
	"bakery-pricing/internal/core/importer"
	"bakery-pricing/internal/infrastructure/config"
	"bakery-pricing/internal/pkg/common"
	"bakery-pricing/internal/storage"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.Bool("openrouter_enabled", cfg.OpenRouter.Enabled),
		zap.String("openrouter_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// 初始化儲存
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.New(startCtx, cfg.Storage)
	if err != nil {
		cancelStart()
		common.LogFatal("Failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	// AI 提供者：沒有 API Key 時匯入會回傳可重試的錯誤
	var aiProvider provider.Provider = provider.Unavailable{}
	if cfg.OpenRouter.Enabled {
		aiProvider = openrouter.NewClient(cfg.OpenRouter)
	} else {
		common.LogWarn("OpenRouter 未設定，AI 匯入停用")
	}
	defer aiProvider.Close()

	// 初始化快取與隊列
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	queueManager := queue.NewManager(cfg.Queue, aiProvider)
	defer queueManager.Close()

	aiService := service.NewService(aiProvider, cacheManager, queueManager, service.WithMaxTokens(cfg.OpenRouter.MaxTokens))

	// 配方服務
	bakerySvc := bakery.NewService(store, importer.New(aiService), cfg.Pricing)
	if err := bakerySvc.Init(startCtx); err != nil {
		cancelStart()
		common.LogFatal("Failed to load recipes", zap.Error(err))
	}
	cancelStart()

	// 設置路由
	router := api.SetupRouter(cfg, api.Dependencies{
		Service: bakerySvc,
		Queue:   queueManager,
		Cache:   cacheManager,
		Model:   aiProvider.GetModel(),
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	serverErr := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		common.LogError("Failed to start server", zap.Error(err))
		return
	}

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
