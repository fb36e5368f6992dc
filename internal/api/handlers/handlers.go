package handlers

import (
	"context"
	"errors"
	"net/http"

	"mood-meal/internal/pkg/common"
	"mood-meal/internal/storage/mongostore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserStore 使用者儲存介面，由 mongostore.Store 實作
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*mongostore.User, error)
	FindUserByID(ctx context.Context, id string) (*mongostore.User, error)
	InsertUser(ctx context.Context, params mongostore.NewUserParams) (*mongostore.User, error)
	UpdateUser(ctx context.Context, id string, update mongostore.UserUpdate) (*mongostore.User, error)
}

// RecommendationStore 提案紀錄儲存介面，由 mongostore.Store 實作
type RecommendationStore interface {
	InsertRecommendation(ctx context.Context, params mongostore.NewRecommendationParams) (*mongostore.Recommendation, error)
	ListRecommendations(ctx context.Context, userID string) ([]mongostore.Recommendation, error)
	DeleteRecommendation(ctx context.Context, id string) error
	InsertHistory(ctx context.Context, userID, meal, mood string) (*mongostore.History, error)
}

// Suggester 提案服務介面，由 suggestion.Service 實作
type Suggester interface {
	Generate(ctx context.Context, moodText string, allergies []string) (*common.SuggestionRecord, error)
}

// writeError 將錯誤轉為統一的 JSON 響應
func writeError(c *gin.Context, err error) {
	var custom *common.CustomError
	if errors.As(err, &custom) {
		c.JSON(custom.Status, common.ErrorResponse{
			Code:    custom.Code,
			Message: custom.Message,
		})
		return
	}

	common.LogError("未預期的錯誤",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", common.RequestID(c)),
	)
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "服務器內部錯誤",
	})
}
