package handlers

import (
	"net/http"

	"mood-meal/internal/pkg/common"
	"mood-meal/internal/storage/mongostore"

	"github.com/gin-gonic/gin"
)

// UserHandler 使用者資料處理器
type UserHandler struct {
	users UserStore
}

// NewUserHandler 創建使用者資料處理器
func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// UpdateUserRequest 使用者更新請求，省略的欄位保持不變
type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Age     *int    `json:"age"`
	Gender  *string `json:"gender"`
	Allergy *string `json:"allergy"`
}

// Update 部分更新使用者資料
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求",
		})
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), c.Param("id"), mongostore.UserUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Age:     req.Age,
		Gender:  req.Gender,
		Allergy: req.Allergy,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		writeError(c, common.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "更新成功",
		"user":    user,
	})
}
