package handlers

import (
	"net/http"

	"mood-meal/internal/pkg/common"
	"mood-meal/internal/storage/mongostore"

	"github.com/gin-gonic/gin"
)

// RecommendHandler 提案紀錄與履歷處理器
type RecommendHandler struct {
	store RecommendationStore
}

// NewRecommendHandler 創建提案紀錄處理器
func NewRecommendHandler(store RecommendationStore) *RecommendHandler {
	return &RecommendHandler{store: store}
}

// CreateRecommendationRequest 新增提案紀錄請求
type CreateRecommendationRequest struct {
	UserID       string   `json:"userId" binding:"required"`
	Meal         string   `json:"meal" binding:"required"`
	Mood         string   `json:"mood"`
	IsFavorite   bool     `json:"isFavorite"`
	Image        string   `json:"image"`
	Summary      string   `json:"summary"`
	Instructions string   `json:"instructions"`
	Ingredients  []string `json:"ingredients"`
}

// CreateHistoryRequest 新增履歷請求
type CreateHistoryRequest struct {
	UserID string `json:"userId" binding:"required"`
	Meal   string `json:"meal" binding:"required"`
	Mood   string `json:"mood"`
}

// Create 新增提案紀錄
func (h *RecommendHandler) Create(c *gin.Context) {
	var req CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "缺少必要欄位",
		})
		return
	}

	rec, err := h.store.InsertRecommendation(c.Request.Context(), mongostore.NewRecommendationParams{
		UserID:       req.UserID,
		Meal:         req.Meal,
		Mood:         req.Mood,
		IsFavorite:   req.IsFavorite,
		Image:        req.Image,
		Summary:      req.Summary,
		Instructions: req.Instructions,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "儲存成功",
		"recommendation": rec,
	})
}

// List 列出使用者的提案紀錄，新到舊排序
func (h *RecommendHandler) List(c *gin.Context) {
	recs, err := h.store.ListRecommendations(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recs)
}

// Delete 刪除提案紀錄，重複刪除同樣返回成功
func (h *RecommendHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteRecommendation(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "刪除成功",
	})
}

// CreateHistory 新增心情與餐點配對的履歷
func (h *RecommendHandler) CreateHistory(c *gin.Context) {
	var req CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "缺少必要欄位",
		})
		return
	}

	history, err := h.store.InsertHistory(c.Request.Context(), req.UserID, req.Meal, req.Mood)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "儲存成功",
		"history": history,
	})
}
