package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// NoInstructions 查無步驟時的固定句
const NoInstructions = "手順情報がありません。"

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// Detail 食譜詳細資料
type Detail struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Image        string           `json:"image,omitempty"`
	Summary      string           `json:"summary"`
	Instructions string           `json:"instructions"`
	Ingredients  []string         `json:"ingredients"`
	Nutrition    common.Nutrition `json:"nutrition"`
}

// Client Spoonacular 食譜搜尋客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建食譜搜尋客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Spoonacular.BaseURL).
		SetTimeout(cfg.Spoonacular.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// searchResponse complexSearch 回應
type searchResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

// detailResponse information 回應
type detailResponse struct {
	ID                   int64  `json:"id"`
	Title                string `json:"title"`
	Image                string `json:"image"`
	Summary              string `json:"summary"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Step string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
	ExtendedIngredients []struct {
		Original string `json:"original"`
	} `json:"extendedIngredients"`
	Nutrition struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// Search 以料理名稱查詢食譜並取得詳細資料。
// 查不到時會以查詢字串的最後一個單字做一次放寬查詢；
// 含有使用者過敏原的食譜視同未命中。
// 傳輸與解析錯誤只記錄日誌並回傳 nil（與未命中同一訊號，已知的設計弱點）。
func (c *Client) Search(ctx context.Context, query string, allergens []string) (*Detail, error) {
	start := time.Now()

	id, err := c.trySearch(ctx, query)
	if err != nil {
		common.LogError("食譜搜尋失敗", zap.Error(err), zap.String("query", query))
		return nil, nil
	}

	// 未命中時用最後一個單字放寬查詢
	if id == 0 {
		fields := strings.Fields(query)
		if len(fields) > 0 {
			fallback := fields[len(fields)-1]
			common.LogInfo("以放寬關鍵字重新搜尋", zap.String("keyword", fallback))
			id, err = c.trySearch(ctx, fallback)
			if err != nil {
				common.LogError("食譜放寬搜尋失敗", zap.Error(err), zap.String("keyword", fallback))
				return nil, nil
			}
		}
	}

	if id == 0 {
		common.LogRecipeLookup(query, false, time.Since(start))
		return nil, nil
	}

	detail, err := c.fetchDetail(ctx, id)
	if err != nil {
		common.LogError("食譜詳細資料取得失敗", zap.Error(err), zap.Int64("recipe_id", id))
		return nil, nil
	}

	// 過敏原子字串過濾（寬鬆比對，可能過度排除）
	if ContainsAllergen(detail.Ingredients, allergens) {
		common.LogWarn("食譜含有過敏原，已排除",
			zap.Int64("recipe_id", id),
			zap.Strings("allergens", allergens),
		)
		return nil, nil
	}

	common.LogRecipeLookup(query, true, time.Since(start))
	return detail, nil
}

// trySearch 查詢最符合的一筆食譜，未命中回傳 0
func (c *Client) trySearch(ctx context.Context, query string) (int64, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey": c.config.Spoonacular.APIKey,
			"query":  query,
			"number": "1",
		}).
		Get("/recipes/complexSearch")

	if err != nil {
		return 0, fmt.Errorf("failed to search recipes: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("recipe API returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, fmt.Errorf("failed to parse search response: %w", err)
	}

	if len(result.Results) == 0 {
		return 0, nil
	}
	return result.Results[0].ID, nil
}

// fetchDetail 取得含營養成分的食譜詳細資料
func (c *Client) fetchDetail(ctx context.Context, id int64) (*Detail, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey":           c.config.Spoonacular.APIKey,
			"includeNutrition": "true",
		}).
		Get("/recipes/" + strconv.FormatInt(id, 10) + "/information")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe detail: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("recipe API returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	var raw detailResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse detail response: %w", err)
	}

	// 步驟合併為換行分隔的文字，缺少時用固定句
	instructions := NoInstructions
	if len(raw.AnalyzedInstructions) > 0 && len(raw.AnalyzedInstructions[0].Steps) > 0 {
		steps := make([]string, 0, len(raw.AnalyzedInstructions[0].Steps))
		for _, s := range raw.AnalyzedInstructions[0].Steps {
			steps = append(steps, s.Step)
		}
		instructions = strings.Join(steps, "\n")
	}

	ingredients := make([]string, 0, len(raw.ExtendedIngredients))
	for _, ing := range raw.ExtendedIngredients {
		ingredients = append(ingredients, ing.Original)
	}

	return &Detail{
		ID:           raw.ID,
		Name:         raw.Title,
		Image:        raw.Image,
		Summary:      htmlTagPattern.ReplaceAllString(raw.Summary, ""),
		Instructions: instructions,
		Ingredients:  ingredients,
		Nutrition: common.Nutrition{
			Calories: roundNutrient(raw, "Calories"),
			Protein:  roundNutrient(raw, "Protein"),
			Fat:      roundNutrient(raw, "Fat"),
		},
	}, nil
}

// roundNutrient 以名稱精確比對營養素，缺少時為 0，四捨五入為整數
func roundNutrient(raw detailResponse, name string) int {
	for _, n := range raw.Nutrition.Nutrients {
		if n.Name == name {
			return int(n.Amount + 0.5)
		}
	}
	return 0
}

// ContainsAllergen 檢查食材清單是否含有任一過敏原子字串（不分大小寫）
func ContainsAllergen(ingredients, allergens []string) bool {
	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		for _, allergen := range allergens {
			if allergen == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(allergen)) {
				return true
			}
		}
	}
	return false
}
