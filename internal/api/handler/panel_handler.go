package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/service"
	"github.com/koshanqari/gl-app-checkin/pkg/response"
)

// PanelHandler 管理面板 HTTP 处理器
type PanelHandler struct {
	panelSvc   service.PanelService
	checkInSvc service.CheckInService
}

// NewPanelHandler 创建 PanelHandler
func NewPanelHandler(panelSvc service.PanelService, checkInSvc service.CheckInService) *PanelHandler {
	return &PanelHandler{panelSvc: panelSvc, checkInSvc: checkInSvc}
}

// View 面板视图：筛选、排序、可见列、统计
// GET /api/panel/view?search=&client=&project=&activity=&sortField=&sortOrder=&toggle=
func (h *PanelHandler) View(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.PanelViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	view, err := h.panelSvc.View(c.Request.Context(), username, &req)
	if err != nil {
		h.handlePanelError(c, err)
		return
	}

	response.OK(c, view)
}

// UpdatePreferences 修改默认筛选与可见列
// PUT /api/panel/preferences
func (h *PanelHandler) UpdatePreferences(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.UpdatePanelPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid preferences payload")
		return
	}

	prefs, err := h.panelSvc.UpdatePreferences(c.Request.Context(), username, &req)
	if err != nil {
		h.handlePanelError(c, err)
		return
	}

	response.OK(c, prefs)
}

// ToggleColumn 切换列可见性
// POST /api/panel/columns/:key/toggle
func (h *PanelHandler) ToggleColumn(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	prefs, err := h.panelSvc.ToggleColumn(c.Request.Context(), username, c.Param("key"))
	if err != nil {
		h.handlePanelError(c, err)
		return
	}

	response.OK(c, prefs)
}

// Reset 重置默认筛选与可见列
// POST /api/panel/reset
func (h *PanelHandler) Reset(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	prefs, err := h.panelSvc.Reset(c.Request.Context(), username)
	if err != nil {
		h.handlePanelError(c, err)
		return
	}

	response.OK(c, prefs)
}

// SetPresent 标记到场状态
// PUT /api/panel/checkins/:id/present
func (h *PanelHandler) SetPresent(c *gin.Context) {
	id, ok := parseCheckInID(c)
	if !ok {
		return
	}

	var req dto.SetPresentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "present is required")
		return
	}

	checkIn, err := h.checkInSvc.SetPresent(c.Request.Context(), id, *req.Present)
	if err != nil {
		h.handlePanelError(c, err)
		return
	}

	response.OK(c, checkIn)
}

// handlePanelError 统一处理面板模块业务错误
func (h *PanelHandler) handlePanelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownColumn):
		response.BadRequest(c, 22001, "Unknown column")
	case errors.Is(err, service.ErrCheckInNotFound):
		response.NotFound(c, 20001, "Check-in not found")
	default:
		writeAppError(c, err, 22000)
	}
}
