package cache

import (
	"context"

	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"
)

// Store 提案快取介面。
// 讀寫之間沒有原子性保證，後寫者獲勝（實際上同一時間只有一筆提案在途）。
type Store interface {
	Get(ctx context.Context, key string) (*common.SuggestionRecord, bool)
	Put(ctx context.Context, key string, record *common.SuggestionRecord) error
	Close() error
}

// New 依設定選擇快取後端：
// 設定了 redis 位址時使用 Redis，否則使用含檔案快照的記憶體快取；
// 快取關閉時回傳不做事的實作。
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("提案快取已停用")
		return noopStore{}, nil
	}
	if cfg.Cache.RedisAddr != "" {
		return NewRedisStore(cfg)
	}
	return NewManager(cfg)
}

type noopStore struct{}

func (noopStore) Get(ctx context.Context, key string) (*common.SuggestionRecord, bool) {
	return nil, false
}

func (noopStore) Put(ctx context.Context, key string, record *common.SuggestionRecord) error {
	return nil
}

func (noopStore) Close() error { return nil }
