package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/service"
	"github.com/koshanqari/gl-app-checkin/pkg/response"
)

// UserPreferenceHandler 用户偏好模块 HTTP 处理器
type UserPreferenceHandler struct {
	prefSvc service.UserPreferenceService
}

// NewUserPreferenceHandler 创建 UserPreferenceHandler
func NewUserPreferenceHandler(prefSvc service.UserPreferenceService) *UserPreferenceHandler {
	return &UserPreferenceHandler{prefSvc: prefSvc}
}

// GetPreferences 读取用户偏好
// GET /api/user-preferences?username=
func (h *UserPreferenceHandler) GetPreferences(c *gin.Context) {
	var q dto.UserPreferencesQuery
	if err := c.ShouldBindQuery(&q); err != nil || q.Username == "" {
		response.BadRequest(c, 21001, "Username is required")
		return
	}

	prefs, err := h.prefSvc.Load(c.Request.Context(), q.Username)
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}

	response.OK(c, prefs)
}

// SavePreferences 保存用户偏好
// POST /api/user-preferences
func (h *UserPreferenceHandler) SavePreferences(c *gin.Context) {
	var req dto.SaveUserPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid preferences payload")
		return
	}

	prefs, err := h.prefSvc.Save(c.Request.Context(), &req)
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}

	response.OK(c, prefs)
}

// handlePreferenceError 统一处理用户偏好模块业务错误
func (h *UserPreferenceHandler) handlePreferenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameRequired):
		response.BadRequest(c, 21001, "Username is required")
	default:
		writeAppError(c, err, 21000)
	}
}
