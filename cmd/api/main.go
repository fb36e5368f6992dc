package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mood-meal/internal/api"
	"mood-meal/internal/api/handlers/health"
	"mood-meal/internal/core/ai/openai"
	"mood-meal/internal/core/recipe"
	"mood-meal/internal/core/suggestion"
	"mood-meal/internal/core/suggestion/cache"
	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"
	"mood-meal/internal/storage/mongostore"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
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
		zap.String("openai_model", cfg.OpenAI.Model),
		zap.String("mongo_database", cfg.Mongo.Database),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 連線文件儲存
	store, err := mongostore.Connect(context.Background(), cfg)
	if err != nil {
		common.LogFatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			common.LogError("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()

	// 初始化提案快取
	suggestionCache, err := cache.New(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize suggestion cache", zap.Error(err))
	}
	defer suggestionCache.Close()

	// 初始化外部 API 用戶端與提案服務
	aiClient := openai.NewClient(cfg)
	recipeClient := recipe.NewClient(cfg)
	suggestionSvc := suggestion.NewService(aiClient, recipeClient, suggestionCache)

	// 快取統計只在記憶體後端可用
	var cacheStats health.StatsProvider
	if manager, ok := suggestionCache.(*cache.Manager); ok {
		cacheStats = manager
	}

	// 設置路由
	router := api.SetupRouter(cfg, api.Deps{
		Store:      store,
		Suggester:  suggestionSvc,
		Translator: suggestionSvc.Translator(),
		CacheStats: cacheStats,
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
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
