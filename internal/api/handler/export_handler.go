package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/koshanqari/gl-app-checkin/internal/dto"
	"github.com/koshanqari/gl-app-checkin/internal/service"
	"github.com/koshanqari/gl-app-checkin/pkg/response"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCSV 导出当前面板视图为 CSV
// GET /api/panel/export/csv?search=&client=&project=&activity=&sortField=&sortOrder=
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	username, req, ok := h.bind(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCSV(c.Request.Context(), username, req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf, filename, contentTypeCSV)
}

// ExportXLSX 导出当前面板视图为 Excel
// GET /api/panel/export/xlsx?search=&client=&project=&activity=&sortField=&sortOrder=
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	username, req, ok := h.bind(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), username, req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, buf, filename, contentTypeXLSX)
}

func (h *ExportHandler) bind(c *gin.Context) (string, *dto.PanelViewRequest, bool) {
	username, ok := MustGetUsername(c)
	if !ok {
		return "", nil, false
	}

	var req dto.PanelViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return "", nil, false
	}
	return username, &req, true
}

// writeDownload 设置下载响应头并写入文件内容
func writeDownload(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c, "Failed to generate export file", "")
	default:
		writeAppError(c, err, 23000)
	}
}
