package handlers

import (
	"net/http"

	"mood-meal/internal/core/exercise"
	"mood-meal/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ExerciseCaloriesRequest 運動消耗熱量計算請求。weight 省略時以 60kg 估算。
type ExerciseCaloriesRequest struct {
	Exercise string  `json:"exercise" binding:"required"`
	Minutes  float64 `json:"minutes" binding:"required"`
	Weight   float64 `json:"weight"`
}

// ExerciseCalories 估算指定運動消耗的熱量
func ExerciseCalories(c *gin.Context) {
	var req ExerciseCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "缺少必要欄位",
		})
		return
	}

	calories, err := exercise.Calories(req.Exercise, req.Minutes, req.Weight)
	if err != nil {
		writeError(c, err)
		return
	}

	weight := req.Weight
	if weight <= 0 {
		weight = exercise.DefaultWeightKg
	}

	c.JSON(http.StatusOK, gin.H{
		"exercise": req.Exercise,
		"minutes":  req.Minutes,
		"weight":   weight,
		"calories": calories,
	})
}
