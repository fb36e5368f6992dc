package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 記憶體提案快取。
// 以 TTL 加上限容量的 LRU 淘汰控制成長，
// 並以 JSON 檔案快照跨重啟保留內容。
type Manager struct {
	config *config.Config
	mu     sync.RWMutex
	store  map[string]cacheEntry
	stats  cacheStats
	done   chan struct{}
}

// cacheEntry 快取條目
type cacheEntry struct {
	record      *common.SuggestionRecord
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 快取統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// snapshotEntry 檔案快照中的一筆條目
type snapshotEntry struct {
	Record    *common.SuggestionRecord `json:"record"`
	ExpiresAt time.Time                `json:"expires_at"`
	CreatedAt time.Time                `json:"created_at"`
}

// NewManager 創建記憶體快取並載入檔案快照
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		config: cfg,
		store:  make(map[string]cacheEntry),
		stats:  cacheStats{},
		done:   make(chan struct{}),
	}

	m.loadSnapshot()

	// 啟動清理過期快取的協程
	go m.startCleanup()

	common.LogInfo("提案快取已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
		zap.Int("載入條目", len(m.store)),
	)

	return m, nil
}

// Get 獲取快取的提案
func (m *Manager) Get(ctx context.Context, key string) (*common.SuggestionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("suggestion", key)
		return nil, false
	}

	// 檢查是否過期
	if time.Now().After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogInfo("快取已過期", zap.String("鍵", key))
		return nil, false
	}

	// 更新訪問統計
	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++

	common.LogCacheHit("suggestion", key)
	return entry.record, true
}

// Put 寫入提案快取並更新檔案快照
func (m *Manager) Put(ctx context.Context, key string, record *common.SuggestionRecord) error {
	m.mu.Lock()

	// 檢查快取大小
	if len(m.store) >= m.config.Cache.MaxSize {
		// 先清理過期項目
		evicted := m.evictExpired()
		common.LogInfo("快取清理執行", zap.Int("清理數量", evicted))

		// 如果仍然超過大小限制，執行 LRU 清理
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRU()
		}

		// 如果仍然超過大小限制，返回錯誤
		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			m.mu.Unlock()
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[key] = cacheEntry{
		record:      record,
		expiresAt:   now.Add(m.config.Cache.TTL),
		createdAt:   now,
		lastAccess:  now,
		accessCount: 0,
	}
	m.mu.Unlock()

	common.LogInfo("快取已儲存", zap.String("鍵", key))

	m.saveSnapshot()
	return nil
}

// startCleanup 啟動清理過期快取的協程
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			count := m.evictExpired()
			m.mu.Unlock()
			if count > 0 {
				m.saveSnapshot()
			}
		case <-m.done:
			return
		}
	}
}

// evictExpired 清理過期的快取，呼叫端須持有寫鎖
func (m *Manager) evictExpired() int {
	now := time.Now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRU 淘汰最少使用的條目，呼叫端須持有寫鎖
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogInfo("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// loadSnapshot 從檔案載入快照，失敗只記錄不中斷
func (m *Manager) loadSnapshot() {
	if m.config.Cache.File == "" {
		return
	}

	data, err := os.ReadFile(m.config.Cache.File)
	if err != nil {
		if !os.IsNotExist(err) {
			common.LogWarn("快取快照讀取失敗", zap.Error(err))
		}
		return
	}

	var snapshot map[string]snapshotEntry
	if err := common.ParseJSONBytes(data, &snapshot); err != nil {
		common.LogWarn("快取快照解析失敗", zap.Error(err))
		return
	}

	now := time.Now()
	for key, entry := range snapshot {
		if entry.Record == nil || now.After(entry.ExpiresAt) {
			continue
		}
		m.store[key] = cacheEntry{
			record:     entry.Record,
			expiresAt:  entry.ExpiresAt,
			createdAt:  entry.CreatedAt,
			lastAccess: now,
		}
	}
}

// saveSnapshot 將目前內容寫入檔案，失敗只記錄不中斷
func (m *Manager) saveSnapshot() {
	if m.config.Cache.File == "" {
		return
	}

	m.mu.RLock()
	snapshot := make(map[string]snapshotEntry, len(m.store))
	for key, entry := range m.store {
		snapshot[key] = snapshotEntry{
			Record:    entry.record,
			ExpiresAt: entry.expiresAt,
			CreatedAt: entry.createdAt,
		}
	}
	m.mu.RUnlock()

	data, err := common.ToJSON(snapshot)
	if err != nil {
		common.LogWarn("快取快照序列化失敗", zap.Error(err))
		return
	}

	if dir := filepath.Dir(m.config.Cache.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			common.LogWarn("快取快照目錄建立失敗", zap.Error(err))
			return
		}
	}
	if err := os.WriteFile(m.config.Cache.File, []byte(data), 0644); err != nil {
		common.LogWarn("快取快照寫入失敗", zap.Error(err))
	}
}

// GetStats 獲取快取統計信息
func (m *Manager) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}

	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"errors":    m.stats.errors,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉快取並寫出最終快照
func (m *Manager) Close() error {
	close(m.done)
	m.saveSnapshot()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]cacheEntry)

	common.LogInfo("提案快取已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
