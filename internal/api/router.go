package api

import (
	"context"
	"net/http"
	"time"

	"mood-meal/internal/api/handlers"
	"mood-meal/internal/api/handlers/health"
	"mood-meal/internal/api/middleware"
	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"
	"mood-meal/internal/storage/mongostore"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 超時設置
const timeoutDuration = 120 * time.Second

// Deps 路由依賴
type Deps struct {
	Store      *mongostore.Store
	Suggester  handlers.Suggester
	Translator handlers.LineTranslator
	CacheStats health.StatsProvider
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
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
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodySize))

	// 全局中間件：請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", common.RequestID(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
		}
	})

	authHandler := handlers.NewAuthHandler(deps.Store)
	userHandler := handlers.NewUserHandler(deps.Store)
	recommendHandler := handlers.NewRecommendHandler(deps.Store)
	suggestHandler := handlers.NewSuggestHandler(deps.Suggester, deps.Store)
	translateHandler := handlers.NewTranslateHandler(deps.Translator)
	healthHandler := health.NewHandler(cfg, deps.Store, deps.CacheStats)

	// 健康檢查路由
	router.GET("/health", healthHandler.Check)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)

	// API 路由組
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/register", authHandler.Register)
		apiGroup.POST("/login", authHandler.Login)
		apiGroup.PATCH("/user/:id", userHandler.Update)

		apiGroup.POST("/history", recommendHandler.CreateHistory)
		apiGroup.POST("/recommend", recommendHandler.Create)
		apiGroup.GET("/recommend/:userId", recommendHandler.List)
		apiGroup.DELETE("/recommend/:id", recommendHandler.Delete)

		// 走外部 API 的端點額外套用去重與限流
		suggestGroup := apiGroup.Group("")
		suggestGroup.Use(middleware.Deduplication(cfg))
		if cfg.RateLimit.Enabled {
			suggestGroup.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		}
		suggestGroup.POST("/suggest", suggestHandler.Suggest)
		suggestGroup.POST("/translate", translateHandler.Translate)

		apiGroup.POST("/recipe/scale", handlers.ScaleRecipe)
		apiGroup.POST("/exercise/calories", handlers.ExerciseCalories)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Server.MaxBodySize),
	)

	return router
}
