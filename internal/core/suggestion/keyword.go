package suggestion

import (
	"context"
	"fmt"
	"strings"
)

// KeywordGenerator 料理名關鍵字生成器。
// 產出一個可在食譜 API 查得到的英文料理名；
// 過敏原安全由下游的食譜過濾把關，這裡只在提示詞中排除。
type KeywordGenerator struct {
	ai Completer
}

// NewKeywordGenerator 創建關鍵字生成器
func NewKeywordGenerator(ai Completer) *KeywordGenerator {
	return &KeywordGenerator{ai: ai}
}

// Generate 依ジャンル、心情原文與過敏原清單生成一個英文料理名。
// genre 可為空字串（放寬重試時使用）。
func (g *KeywordGenerator) Generate(ctx context.Context, genre, moodText string, allergies []string) (string, error) {
	allergyText := ""
	if len(allergies) > 0 {
		allergyText = fmt.Sprintf("※以下の食材は絶対に含まないでください：%s", strings.Join(allergies, ", "))
	}

	prompt := fmt.Sprintf(`あなたは料理提案AIです。
次の条件を考慮し、Spoonacularに登録されていそうな主食または主菜レベルの料理名（英語のみ、例：Grilled Chicken Salad、Beef Stir-Fry）を1つだけ提案してください。
創作風・ユニークすぎる名前は禁止。スイーツ・デザート・軽食・飲み物は禁止。

気分・体調: %s
希望ジャンル: %s
%s

料理名のみ返答してください。他の説明や記号は禁止です。`, moodText, genre, allergyText)

	keyword, err := g.ai.Complete(ctx, prompt, 0.5)
	if err != nil {
		return "", fmt.Errorf("failed to generate recipe keyword: %w", err)
	}

	return strings.TrimSpace(keyword), nil
}
