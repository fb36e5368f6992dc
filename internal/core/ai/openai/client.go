package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client 文字補全 API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建文字補全客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.OpenAI.BaseURL).
		SetTimeout(cfg.OpenAI.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenAI.APIKey))

	return &Client{
		config: cfg,
		client: client,
	}
}

// Complete 發送單輪提示詞並返回補全內容
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	start := time.Now()

	// 構建請求
	req := map[string]interface{}{
		"model": c.config.OpenAI.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": temperature,
		"max_tokens":  c.config.OpenAI.MaxTokens,
	}

	// 發送請求
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	common.LogAICall(prompt, time.Since(start), err, "")

	if err != nil {
		return "", fmt.Errorf("failed to send request to completion API: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("completion API returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse completion response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty content in completion response")
	}

	return content, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
