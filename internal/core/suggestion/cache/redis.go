package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 提案快取後端
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore 創建 Redis 快取並測試連線
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 提案快取已初始化",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("存活時間", cfg.Cache.TTL),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取的提案
func (s *RedisStore) Get(ctx context.Context, key string) (*common.SuggestionRecord, bool) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("Redis 快取讀取失敗", zap.Error(err))
		}
		common.LogCacheMiss("suggestion", key)
		return nil, false
	}

	var record common.SuggestionRecord
	if err := common.ParseJSONBytes(data, &record); err != nil {
		common.LogWarn("Redis 快取解析失敗", zap.Error(err))
		return nil, false
	}

	common.LogCacheHit("suggestion", key)
	return &record, true
}

// Put 寫入提案快取
func (s *RedisStore) Put(ctx context.Context, key string, record *common.SuggestionRecord) error {
	data, err := common.ToJSON(record)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion record: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(key), data, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	common.LogInfo("快取已儲存", zap.String("鍵", key))
	return nil
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// redisKey 快取鍵含原始心情文字，雜湊後再存入 Redis
func redisKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return "suggestion:" + hex.EncodeToString(hash[:])
}
