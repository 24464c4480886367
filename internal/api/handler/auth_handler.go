package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/service"
	"github.com/koshanqari/gl-app-checkin/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 管理员登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Username and password are required")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 11001, "Invalid username or password")
			return
		}
		response.InternalError(c, "", "")
		return
	}

	response.OK(c, result)
}

// Logout 登出，Token 加入黑名单
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := tokenInfo(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c, "Failed to log out", "")
		return
	}

	response.Message(c, "Logged out")
}

// Session 当前会话信息
// GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	_, exp := tokenInfo(c)
	response.OK(c, dto.SessionResponse{
		Username:  username,
		ExpiresAt: exp.UTC().Format(time.RFC3339),
	})
}
