package api

import (
	"time"

	"bakery-pricing/internal/api/handlers"
	"bakery-pricing/internal/api/handlers/health"
	recipeHandler "bakery-pricing/internal/api/handlers/recipe"
	"bakery-pricing/internal/api/middleware"
	"bakery-pricing/internal/core/ai/cache"
	"bakery-pricing/internal/core/ai/queue"
	"bakery-pricing/internal/core/bakery"
	"bakery-pricing/internal/infrastructure/config"
	"bakery-pricing/internal/metrics"
	"bakery-pricing/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Service *bakery.Service
	Queue   *queue.Manager
	Cache   *cache.Manager
	Model   string
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())
	router.Use(metrics.PrometheusMiddleware())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.Compression())
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 健康檢查路由
	var ready health.Checker
	if deps.Service != nil {
		ready = deps.Service.Ready
	}
	healthHandler := health.NewHandler(cfg.App.Version, deps.Model, ready, deps.Queue, deps.Cache)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		api.POST("/calculate", recipeHandler.Calculate)
		api.POST("/quantity/parse", recipeHandler.ParseQuantity)
		api.GET("/units", recipeHandler.ListUnits)

		h := recipeHandler.NewHandler(deps.Service)
		aiHandler := handlers.NewAIHandler(deps.Service)
		dedup := middleware.NewDeduplicator(cfg.DedupWindow)

		recipes := api.Group("/recipes")
		{
			recipes.GET("", h.ListRecipes)
			recipes.GET("/:name", h.GetRecipe)
			recipes.PUT("/:name/settings", h.UpdateSettings)

			recipes.POST("/:name/ingredients", h.AddIngredient)
			recipes.PATCH("/:name/ingredients/:id", h.UpdateIngredient)
			recipes.DELETE("/:name/ingredients/:id", h.DeleteIngredient)

			recipes.POST("/:name/packaging", h.AddPackaging)
			recipes.PATCH("/:name/packaging/:id", h.UpdatePackaging)
			recipes.DELETE("/:name/packaging/:id", h.DeletePackaging)

			// AI 匯入：相同內容的重複送出直接拒絕
			recipes.POST("/:name/import", dedup.Middleware(), aiHandler.ImportRecipe)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.String("model", deps.Model),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
