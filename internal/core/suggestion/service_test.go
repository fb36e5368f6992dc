package suggestion

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"mood-meal/internal/core/recipe"
	"mood-meal/internal/core/suggestion/cache"
	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher 依呼叫順序回傳預設結果，超出後一律未命中
type fakeSearcher struct {
	mu      sync.Mutex
	results []*recipe.Detail
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, allergens []string) (*recipe.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if len(f.queries) <= len(f.results) {
		return f.results[len(f.queries)-1], nil
	}
	return nil, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// pipelineCompleter 依提示詞內容分流的假補全器
func pipelineCompleter() *fakeCompleter {
	return &fakeCompleter{complete: func(prompt string, temperature float64) (string, error) {
		switch {
		case strings.Contains(prompt, "食事提案AI"):
			return "ジャンル: エネルギー系\n理由: 疲労回復に効果的だからです。", nil
		case strings.Contains(prompt, "料理提案AI"):
			return "Beef Stir-Fry", nil
		default:
			return "牛肉炒め", nil
		}
	}}
}

func newTestCache(t *testing.T) cache.Store {
	t.Helper()
	store, err := cache.NewManager(&config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         16,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleDetail() *recipe.Detail {
	return &recipe.Detail{
		ID:           42,
		Name:         "Beef Stir-Fry",
		Summary:      "A hearty dish.",
		Instructions: "Stir-fry the beef.",
		Ingredients:  []string{"200g beef"},
		Nutrition:    common.Nutrition{Calories: 500, Protein: 30, Fat: 20},
	}
}

func TestGenerateEmptyMood(t *testing.T) {
	ai := pipelineCompleter()
	searcher := &fakeSearcher{}
	svc := NewService(ai, searcher, newTestCache(t))

	record, err := svc.Generate(context.Background(), "   ", nil)

	assert.ErrorIs(t, err, common.ErrEmptyMood)
	assert.Nil(t, record)
	assert.Equal(t, 0, ai.callCount())
	assert.Equal(t, 0, searcher.callCount())
}

func TestGenerateSuccess(t *testing.T) {
	ai := pipelineCompleter()
	searcher := &fakeSearcher{results: []*recipe.Detail{sampleDetail()}}
	svc := NewService(ai, searcher, newTestCache(t))

	record, err := svc.Generate(context.Background(), "疲れた", []string{"egg"})

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, int64(42), record.RecipeID)
	assert.Equal(t, "牛肉炒め", record.Name)
	assert.Equal(t, "エネルギー系", record.Genre)
	assert.Equal(t, "疲労回復に効果的だからです。", record.Reason)
	assert.Equal(t, []string{"Beef Stir-Fry"}, searcher.queries)
	// 分類、關鍵字、翻譯各一次
	assert.Equal(t, 3, ai.callCount())
}

func TestGenerateCachesSuggestion(t *testing.T) {
	ai := pipelineCompleter()
	searcher := &fakeSearcher{results: []*recipe.Detail{sampleDetail()}}
	svc := NewService(ai, searcher, newTestCache(t))

	first, err := svc.Generate(context.Background(), "疲れた", []string{"egg"})
	require.NoError(t, err)

	aiCalls := ai.callCount()
	searchCalls := searcher.callCount()

	second, err := svc.Generate(context.Background(), "疲れた", []string{"egg"})
	require.NoError(t, err)

	// 第二次完全由快取供應，不再呼叫外部服務
	assert.Equal(t, first, second)
	assert.Equal(t, aiCalls, ai.callCount())
	assert.Equal(t, searchCalls, searcher.callCount())
}

func TestGenerateDifferentAllergiesMissCache(t *testing.T) {
	ai := pipelineCompleter()
	searcher := &fakeSearcher{results: []*recipe.Detail{sampleDetail(), sampleDetail()}}
	svc := NewService(ai, searcher, newTestCache(t))

	_, err := svc.Generate(context.Background(), "疲れた", []string{"egg"})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "疲れた", []string{"milk"})
	require.NoError(t, err)

	assert.Equal(t, 2, searcher.callCount())
}

func TestGenerateRelaxedRetry(t *testing.T) {
	var keywordPrompts []string
	var mu sync.Mutex
	ai := &fakeCompleter{complete: func(prompt string, temperature float64) (string, error) {
		switch {
		case strings.Contains(prompt, "食事提案AI"):
			return "ジャンル: ヘルシー\n理由: さっぱりした料理が合うためです。", nil
		case strings.Contains(prompt, "料理提案AI"):
			mu.Lock()
			keywordPrompts = append(keywordPrompts, prompt)
			mu.Unlock()
			return "Chicken Salad", nil
		default:
			return "チキンサラダ", nil
		}
	}}
	searcher := &fakeSearcher{results: []*recipe.Detail{nil, sampleDetail()}}
	svc := NewService(ai, searcher, newTestCache(t))

	record, err := svc.Generate(context.Background(), "さっぱりしたい", nil)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 2, searcher.callCount())
	require.Len(t, keywordPrompts, 2)
	// 第一次帶ジャンル，重試時放寬為空
	assert.Contains(t, keywordPrompts[0], "希望ジャンル: ヘルシー")
	assert.Contains(t, keywordPrompts[1], "希望ジャンル: \n")
}

func TestGenerateNotFoundAfterRetry(t *testing.T) {
	ai := pipelineCompleter()
	searcher := &fakeSearcher{}
	svc := NewService(ai, searcher, newTestCache(t))

	record, err := svc.Generate(context.Background(), "お腹すいた", nil)

	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
	assert.Nil(t, record)
	assert.Equal(t, 2, searcher.callCount())
}

func TestGenerateAIFailure(t *testing.T) {
	ai := &fakeCompleter{complete: func(prompt string, temperature float64) (string, error) {
		return "", errors.New("upstream down")
	}}
	searcher := &fakeSearcher{}
	svc := NewService(ai, searcher, newTestCache(t))

	record, err := svc.Generate(context.Background(), "疲れた", nil)

	assert.ErrorIs(t, err, common.ErrAIServiceError)
	assert.Nil(t, record)
	assert.Equal(t, 0, searcher.callCount())
}

func TestGenerateFailureNotCached(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	ai := &fakeCompleter{complete: func(prompt string, temperature float64) (string, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			return "", errors.New("upstream down")
		}
		switch {
		case strings.Contains(prompt, "食事提案AI"):
			return "ジャンル: 濃い味\n理由: しっかりした味が合うためです。", nil
		case strings.Contains(prompt, "料理提案AI"):
			return "Beef Curry", nil
		default:
			return "ビーフカレー", nil
		}
	}}
	searcher := &fakeSearcher{results: []*recipe.Detail{sampleDetail()}}
	svc := NewService(ai, searcher, newTestCache(t))

	_, err := svc.Generate(context.Background(), "疲れた", nil)
	require.ErrorIs(t, err, common.ErrAIServiceError)

	// 失敗不落快取，重試時重新走完整流程
	record, err := svc.Generate(context.Background(), "疲れた", nil)
	require.NoError(t, err)
	assert.Equal(t, "ビーフカレー", record.Name)
}
