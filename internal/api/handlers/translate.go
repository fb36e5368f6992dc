package handlers

import (
	"context"
	"net/http"

	"mood-meal/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// LineTranslator 逐行翻譯介面，由 suggestion.Translator 實作
type LineTranslator interface {
	TranslateLines(ctx context.Context, lines []string) ([]string, error)
}

// TranslateHandler 食譜詳細文字翻譯處理器
type TranslateHandler struct {
	translator LineTranslator
}

// NewTranslateHandler 創建翻譯處理器
func NewTranslateHandler(translator LineTranslator) *TranslateHandler {
	return &TranslateHandler{translator: translator}
}

// TranslateRequest 翻譯請求
type TranslateRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// Translate 將英文文字逐行翻成日文，保持原有順序
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "缺少必要欄位",
		})
		return
	}

	lines, err := h.translator.TranslateLines(c.Request.Context(), req.Lines)
	if err != nil {
		writeError(c, common.NewError(
			common.ErrAIServiceError.Code,
			common.ErrAIServiceError.Message,
			common.ErrAIServiceError.Status,
			err,
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": lines})
}
