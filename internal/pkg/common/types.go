package common

import (
	"strings"
)

// Nutrition 單份營養成分（四捨五入為整數）
type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Fat      int `json:"fat"`
}

// GenreClassification 料理ジャンル分類結果
type GenreClassification struct {
	Genre  string `json:"genre"`
	Reason string `json:"reason"`
}

// SuggestionRecord 一次提案的完整結果，建立後不再修改
type SuggestionRecord struct {
	RecipeID     int64     `json:"id"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	Summary      string    `json:"summary"`
	Instructions string    `json:"instructions"`
	Ingredients  []string  `json:"ingredients"`
	Nutrition    Nutrition `json:"nutrition"`
	Genre        string    `json:"genre"`
	Reason       string    `json:"reason"`
}

// SplitAllergies 將個人檔案中逗號分隔的過敏原欄位拆成清單
func SplitAllergies(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SuggestionCacheKey 以心情原文與過敏原清單組成決定性的快取鍵
func SuggestionCacheKey(moodText string, allergies []string) string {
	return strings.TrimSpace(moodText) + "___" + strings.Join(allergies, ",")
}
