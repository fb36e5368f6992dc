package suggestion

import (
	"context"
	"fmt"
	"strings"

	"mood-meal/internal/core/recipe"
	"mood-meal/internal/core/suggestion/cache"
	"mood-meal/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeSearcher 食譜查詢介面，由 recipe.Client 實作。
// 未命中與傳輸失敗都以 nil 表示（見 recipe.Client.Search）。
type RecipeSearcher interface {
	Search(ctx context.Context, query string, allergens []string) (*recipe.Detail, error)
}

// Service 提案服務。
// 依序串接分類、關鍵字生成、食譜查詢與翻譯，
// 同一組（心情原文、過敏原清單）只對外部 API 發送一次請求。
type Service struct {
	classifier *Classifier
	keywords   *KeywordGenerator
	translator *Translator
	searcher   RecipeSearcher
	cache      cache.Store
}

// NewService 創建提案服務
func NewService(ai Completer, searcher RecipeSearcher, store cache.Store) *Service {
	return &Service{
		classifier: NewClassifier(ai),
		keywords:   NewKeywordGenerator(ai),
		translator: NewTranslator(ai),
		searcher:   searcher,
		cache:      store,
	}
}

// Translator 返回內部翻譯器，供詳細畫面的逐行翻譯使用
func (s *Service) Translator() *Translator {
	return s.translator
}

// Generate 依心情・體況文字生成一筆提案。
// 快取命中時原樣返回儲存的結果，不做新鮮度或過敏原再驗證；
// 任何階段失敗都不寫入快取。
func (s *Service) Generate(ctx context.Context, moodText string, allergies []string) (*common.SuggestionRecord, error) {
	if strings.TrimSpace(moodText) == "" {
		return nil, common.ErrEmptyMood
	}

	key := common.SuggestionCacheKey(moodText, allergies)
	if record, ok := s.cache.Get(ctx, key); ok {
		return record, nil
	}

	classification, err := s.classifier.Classify(ctx, moodText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIServiceError, err)
	}

	keyword, err := s.keywords.Generate(ctx, classification.Genre, moodText, allergies)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIServiceError, err)
	}
	common.LogInfo("料理名關鍵字已生成", zap.String("keyword", keyword))

	detail, err := s.searcher.Search(ctx, keyword, allergies)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIServiceError, err)
	}

	// 未命中時不帶ジャンル重新生成關鍵字，放寬條件再查一次
	if detail == nil {
		common.LogInfo("食譜未命中，以放寬條件重試")
		keyword, err = s.keywords.Generate(ctx, "", moodText, allergies)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrAIServiceError, err)
		}
		detail, err = s.searcher.Search(ctx, keyword, allergies)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrAIServiceError, err)
		}
		if detail == nil {
			return nil, common.ErrRecipeNotFound
		}
	}

	localizedName, err := s.translator.TranslateName(ctx, detail.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAIServiceError, err)
	}

	record := &common.SuggestionRecord{
		RecipeID:     detail.ID,
		Name:         localizedName,
		Image:        detail.Image,
		Summary:      detail.Summary,
		Instructions: detail.Instructions,
		Ingredients:  detail.Ingredients,
		Nutrition:    detail.Nutrition,
		Genre:        classification.Genre,
		Reason:       classification.Reason,
	}

	if err := s.cache.Put(ctx, key, record); err != nil {
		// 快取失敗不影響提案結果
		common.LogWarn("提案快取寫入失敗", zap.Error(err))
	}

	return record, nil
}
