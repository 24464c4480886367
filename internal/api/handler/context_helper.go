package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/koshanqari/gl-app-checkin/internal/api/middleware"
	apperrors "github.com/koshanqari/gl-app-checkin/pkg/errors"
	"github.com/koshanqari/gl-app-checkin/pkg/response"
)

// MustGetUsername 从 Gin 上下文中安全提取管理员用户名。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUsername(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextUsername)
	if s == "" {
		response.Unauthorized(c, 10002, "Unauthorized")
		return "", false
	}
	return s, true
}

// tokenInfo 当前请求 Token 的 JTI 与过期时间（登出使用）
func tokenInfo(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.ContextTokenJTI), c.GetTime(middleware.ContextTokenExp)
}

// parseCheckInID 解析路径中的签到 ID；非法时写入 400
func parseCheckInID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "Invalid check-in id")
		return 0, false
	}
	return uint(id), true
}

// writeAppError 按错误分类写入响应：非存储错误只返回消息，存储错误附带底层详情
func writeAppError(c *gin.Context, err error, code int) {
	appErr, ok := apperrors.As(err)
	if !ok {
		response.InternalError(c, "", err.Error())
		return
	}
	status := apperrors.HTTPStatus(appErr.Kind)
	if appErr.Kind == apperrors.KindStore || appErr.Kind == apperrors.KindUnknown {
		response.InternalError(c, appErr.Message, appErr.Details)
		return
	}
	response.Error(c, status, code, appErr.Message)
}
