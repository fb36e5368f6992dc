package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"mood-meal/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// Pinger 連線檢查介面，由 mongostore.Store 實作
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsProvider 快取統計介面，由 cache.Manager 實作
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Handler 健康檢查處理器
type Handler struct {
	config *config.Config
	db     Pinger
	cache  StatsProvider
}

// NewHandler 創建健康檢查處理器。cache 可為 nil（停用或 Redis 後端時）。
func NewHandler(cfg *config.Config, db Pinger, cache StatsProvider) *Handler {
	return &Handler{
		config: cfg,
		db:     db,
		cache:  cache,
	}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Check 健康檢查，返回運行時與快取統計
func (h *Handler) Check(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.cache != nil {
		response.Cache = h.cache.GetStats()
	}

	c.JSON(http.StatusOK, response)
}

// Ready 就緒檢查，確認文件儲存可連線
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live 存活檢查
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
