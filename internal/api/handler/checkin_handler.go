package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/service"
	"github.com/koshanqari/gl-app-checkin/pkg/response"
)

// CheckInHandler 签到模块 HTTP 处理器
type CheckInHandler struct {
	checkInSvc service.CheckInService
}

// NewCheckInHandler 创建 CheckInHandler
func NewCheckInHandler(checkInSvc service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInSvc: checkInSvc}
}

// ListCheckIns 获取签到列表
// GET /api/checkins?search=&sortField=&sortOrder=
func (h *CheckInHandler) ListCheckIns(c *gin.Context) {
	var req dto.CheckInListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	checkIns, err := h.checkInSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.OK(c, checkIns)
}

// GetCheckIn 获取签到详情
// GET /api/checkins/:id
func (h *CheckInHandler) GetCheckIn(c *gin.Context) {
	id, ok := parseCheckInID(c)
	if !ok {
		return
	}

	checkIn, err := h.checkInSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.OK(c, checkIn)
}

// CreateCheckIn 创建签到
// POST /api/checkins
func (h *CheckInHandler) CreateCheckIn(c *gin.Context) {
	var req dto.CreateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err, "Employee ID and name are required")
		return
	}

	checkIn, err := h.checkInSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.Created(c, checkIn)
}

// UpdateCheckIn 部分更新签到
// PUT /api/checkins/:id
func (h *CheckInHandler) UpdateCheckIn(c *gin.Context) {
	id, ok := parseCheckInID(c)
	if !ok {
		return
	}

	var req dto.UpdateCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err, "Invalid check-in payload")
		return
	}

	checkIn, err := h.checkInSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.OK(c, checkIn)
}

// DeleteCheckIn 删除签到
// DELETE /api/checkins/:id
func (h *CheckInHandler) DeleteCheckIn(c *gin.Context) {
	id, ok := parseCheckInID(c)
	if !ok {
		return
	}

	if err := h.checkInSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCheckInError(c, err)
		return
	}

	response.Message(c, "Check-in deleted successfully")
}

// handleBindError 区分必填缺失、手机号格式与其他绑定错误
func (h *CheckInHandler) handleBindError(c *gin.Context, err error, requiredMsg string) {
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				response.BadRequest(c, 10001, requiredMsg)
				return
			}
		}
		fe := verrs[0]
		switch fe.Tag() {
		case "mobile":
			response.BadRequest(c, 20003, "Mobile Number must be exactly 10 digits")
		case "max":
			response.BadRequest(c, 10001, fmt.Sprintf("Validation error: %s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			response.BadRequest(c, 10001, fmt.Sprintf("Validation error: %s is invalid", fe.Field()))
		}
	case errors.As(err, &typeErr):
		response.BadRequest(c, 10001, fmt.Sprintf("Validation error: %s must be of type %s", typeErr.Field, typeErr.Type.Kind()))
	default:
		response.BadRequest(c, 10001, "Invalid JSON body")
	}
}

// handleCheckInError 统一处理签到模块业务错误
func (h *CheckInHandler) handleCheckInError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCheckInNotFound):
		response.NotFound(c, 20001, "Check-in not found")
	case errors.Is(err, service.ErrCheckInExists):
		response.Conflict(c, 20002, "A check-in with this ID already exists.")
	case errors.Is(err, service.ErrInvalidMobile):
		response.BadRequest(c, 20003, "Mobile Number must be exactly 10 digits")
	default:
		writeAppError(c, err, 20000)
	}
}
