package suggestion

import (
	"context"
	"fmt"
	"regexp"

	"mood-meal/internal/pkg/common"

	"go.uber.org/zap"
)

// Completer 文字補全介面，由 openai.Client 實作
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

const (
	// 標籤缺失時的替代值
	unknownGenre      = "不明"
	reasonUnavailable = "理由が取得できませんでした"
)

var (
	genrePattern  = regexp.MustCompile(`ジャンル[:：]\s*(.+)`)
	reasonPattern = regexp.MustCompile(`理由[:：]\s*(.+)`)
)

// Classifier 心情・體況的料理ジャンル分類器
type Classifier struct {
	ai Completer
}

// NewClassifier 創建分類器
func NewClassifier(ai Completer) *Classifier {
	return &Classifier{ai: ai}
}

// Classify 依心情・體況文字分類料理ジャンル。
// 模型輸出缺少標籤時以替代值補上，不會因格式錯誤而失敗。
func (c *Classifier) Classify(ctx context.Context, moodText string) (*common.GenreClassification, error) {
	prompt := fmt.Sprintf(`あなたは食事提案AIです。
以下の気分・体調に対して、以下2つを日本語で出力してください：

1. 料理ジャンル（例：辛いもの、さっぱり、エネルギー系、濃い味、ヘルシー など）
2. そのジャンルを選んだ理由（簡潔に1文）

出力形式：
ジャンル: ○○○
理由: ○○○○○○○○○○○○

気分・体調: "%s"`, moodText)

	text, err := c.ai.Complete(ctx, prompt, 0.5)
	if err != nil {
		return nil, fmt.Errorf("failed to classify mood: %w", err)
	}

	result := &common.GenreClassification{
		Genre:  unknownGenre,
		Reason: reasonUnavailable,
	}
	if m := genrePattern.FindStringSubmatch(text); m != nil {
		result.Genre = m[1]
	}
	if m := reasonPattern.FindStringSubmatch(text); m != nil {
		result.Reason = m[1]
	}

	common.LogInfo("ジャンル分類完成",
		zap.String("genre", result.Genre),
	)

	return result, nil
}
