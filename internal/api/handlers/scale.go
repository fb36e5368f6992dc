package handlers

import (
	"net/http"

	"mood-meal/internal/core/recipe"
	"mood-meal/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ScaleRequest 食材份量換算請求。base_servings 省略時視為 2 人份。
type ScaleRequest struct {
	Ingredients  []string `json:"ingredients" binding:"required"`
	Servings     int      `json:"servings" binding:"required"`
	BaseServings int      `json:"base_servings"`
}

// ScaleRecipe 將食材清單換算為指定人數的份量
func ScaleRecipe(c *gin.Context) {
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "缺少必要欄位",
		})
		return
	}

	if req.BaseServings == 0 {
		req.BaseServings = 2
	}

	scaled := recipe.ScaleIngredients(req.Ingredients, req.Servings, req.BaseServings)

	c.JSON(http.StatusOK, gin.H{
		"servings":    req.Servings,
		"ingredients": scaled,
	})
}
