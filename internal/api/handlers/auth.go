package handlers

import (
	"net/http"

	"mood-meal/internal/pkg/common"
	"mood-meal/internal/storage/mongostore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 註冊與登入處理器
type AuthHandler struct {
	users UserStore
}

// NewAuthHandler 創建註冊與登入處理器
func NewAuthHandler(users UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// RegisterRequest 註冊請求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Allergy  string `json:"allergy"`
}

// LoginRequest 登入請求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 註冊新使用者
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "缺少必要欄位",
		})
		return
	}

	existing, err := h.users.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	if existing != nil {
		writeError(c, common.ErrEmailRegistered)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err)
		return
	}

	user, err := h.users.InsertUser(c.Request.Context(), mongostore.NewUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Age:      req.Age,
		Gender:   req.Gender,
		Allergy:  req.Allergy,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("使用者註冊成功",
		zap.String("user_id", user.ID.Hex()),
		zap.String("request_id", common.RequestID(c)),
	)

	c.JSON(http.StatusCreated, gin.H{
		"message": "註冊成功",
		"user":    user,
	})
}

// Login 登入驗證
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "缺少必要欄位",
		})
		return
	}

	user, err := h.users.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		writeError(c, common.ErrUserNotFound)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(c, common.ErrWrongPassword)
		return
	}

	common.LogInfo("使用者登入成功",
		zap.String("user_id", user.ID.Hex()),
		zap.String("request_id", common.RequestID(c)),
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "登入成功",
		"user":    user,
	})
}
