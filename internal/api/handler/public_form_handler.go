package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/form"
	"github.com/koshanqari/gl-app-checkin/internal/service"
	apperrors "github.com/koshanqari/gl-app-checkin/pkg/errors"
	"github.com/koshanqari/gl-app-checkin/pkg/response"
)

// PublicFormHandler 公开签到表单 HTTP 处理器（无需登录）
type PublicFormHandler struct {
	checkInSvc service.CheckInService
}

// NewPublicFormHandler 创建 PublicFormHandler
func NewPublicFormHandler(checkInSvc service.CheckInService) *PublicFormHandler {
	return &PublicFormHandler{checkInSvc: checkInSvc}
}

// NewForm 空白表单，活动上下文取自查询参数
// GET /api/public/form?client=&project=&activity=
func (h *PublicFormHandler) NewForm(c *gin.Context) {
	client, project, activity := formContext(c)
	c.JSON(http.StatusOK, form.New(client, project, activity))
}

// Submit 提交签到
// POST /api/public/checkins?client=&project=&activity=
func (h *PublicFormHandler) Submit(c *gin.Context) {
	var f dto.PublicCheckInForm
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, dto.PublicCheckInResponse{Message: form.InvalidMessage, Form: f})
		return
	}

	// 1. 补齐上下文并清洗输入
	client, project, activity := formContext(c)
	form.ApplyContext(&f, client, project, activity)
	form.Normalize(&f)

	// 2. 客户端校验
	if fieldErrors := form.Validate(&f); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, dto.PublicCheckInResponse{
			Message:     form.InvalidMessage,
			FieldErrors: fieldErrors,
			Form:        f,
		})
		return
	}

	// 3. 提交；失败时回显表单
	record, err := h.checkInSvc.Create(c.Request.Context(), form.ToCreateRequest(&f))
	if err != nil {
		status, message := http.StatusInternalServerError, form.FallbackMessage
		if appErr, ok := apperrors.As(err); ok {
			status = apperrors.HTTPStatus(appErr.Kind)
			if appErr.Kind != apperrors.KindStore && appErr.Kind != apperrors.KindUnknown {
				message = appErr.Message
			}
		}
		c.JSON(status, dto.PublicCheckInResponse{Message: message, Form: f})
		return
	}

	c.JSON(http.StatusCreated, dto.PublicCheckInResponse{
		Message: form.SuccessMessage,
		Record:  record,
		Form:    *form.Reset(&f),
	})
}

// AdjustCounter 家属人数计数器加减，返回更新后的表单
// POST /api/public/form/counters/:name/:op  (op: inc | dec)
func (h *PublicFormHandler) AdjustCounter(c *gin.Context) {
	var f dto.PublicCheckInForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.BadRequest(c, 24001, "Invalid form payload")
		return
	}

	var err error
	switch c.Param("op") {
	case "inc":
		err = form.Increment(&f, c.Param("name"))
	case "dec":
		err = form.Decrement(&f, c.Param("name"))
	default:
		response.BadRequest(c, 24002, "Counter operation must be inc or dec")
		return
	}
	if errors.Is(err, form.ErrUnknownCounter) {
		response.BadRequest(c, 24003, "Unknown counter")
		return
	}

	response.OK(c, f)
}

func formContext(c *gin.Context) (string, string, string) {
	return c.Query("client"), c.Query("project"), c.Query("activity")
}
