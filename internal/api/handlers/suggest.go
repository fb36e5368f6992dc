package handlers

import (
	"context"
	"net/http"
	"time"

	"mood-meal/internal/pkg/common"
	"mood-meal/internal/storage/mongostore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuggestHandler 心情餐點提案處理器
type SuggestHandler struct {
	suggester Suggester
	store     RecommendationStore
}

// NewSuggestHandler 創建提案處理器
func NewSuggestHandler(suggester Suggester, store RecommendationStore) *SuggestHandler {
	return &SuggestHandler{
		suggester: suggester,
		store:     store,
	}
}

// SuggestRequest 提案請求。user_id 帶入時結果會在背景寫入該使用者的提案紀錄。
type SuggestRequest struct {
	Mood      string   `json:"mood"`
	Allergies []string `json:"allergies"`
	UserID    string   `json:"user_id"`
}

// Suggest 依心情・體況生成一筆餐點提案
func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求",
		})
		return
	}

	record, err := h.suggester.Generate(c.Request.Context(), req.Mood, req.Allergies)
	if err != nil {
		writeError(c, err)
		return
	}

	// 背景寫入提案紀錄，失敗只記錄不影響響應
	if req.UserID != "" {
		go h.autoSave(req.UserID, req.Mood, record)
	}

	c.JSON(http.StatusOK, record)
}

// autoSave 將提案結果寫入使用者的提案紀錄
func (h *SuggestHandler) autoSave(userID, mood string, record *common.SuggestionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.store.InsertRecommendation(ctx, mongostore.NewRecommendationParams{
		UserID:       userID,
		Meal:         record.Name,
		Mood:         mood,
		Image:        record.Image,
		Summary:      record.Summary,
		Instructions: record.Instructions,
		Ingredients:  record.Ingredients,
	})
	if err != nil {
		common.LogWarn("提案紀錄自動儲存失敗",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
