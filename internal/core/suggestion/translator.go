package suggestion

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Translator 英日翻譯器
type Translator struct {
	ai Completer
}

// NewTranslator 創建翻譯器
func NewTranslator(ai Completer) *Translator {
	return &Translator{ai: ai}
}

// TranslateName 將英文料理名翻成自然的日文料理名
func (t *Translator) TranslateName(ctx context.Context, englishName string) (string, error) {
	prompt := fmt.Sprintf(`"%s" を自然な日本語の料理名にしてください。料理名のみ返答。`, englishName)

	name, err := t.ai.Complete(ctx, prompt, 0.3)
	if err != nil {
		return "", fmt.Errorf("failed to translate recipe name: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// TranslateText 將英文文章翻成日文
func (t *Translator) TranslateText(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf("次の英語の文章を自然な日本語に翻訳してください：\n\n%s", text)

	translated, err := t.ai.Complete(ctx, prompt, 0.5)
	if err != nil {
		return "", fmt.Errorf("failed to translate text: %w", err)
	}
	return strings.TrimSpace(translated), nil
}

// TranslateLines 併發翻譯多行文字並保持原有順序。
// 任一行失敗即整體失敗，回傳第一個錯誤。
func (t *Translator) TranslateLines(ctx context.Context, lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	out := make([]string, len(lines))
	errs := make([]error, len(lines))

	var wg sync.WaitGroup
	for i, line := range lines {
		wg.Add(1)
		go func(i int, line string) {
			defer wg.Done()
			out[i], errs[i] = t.TranslateText(ctx, line)
		}(i, line)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
