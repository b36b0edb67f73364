package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	errorHandler
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, eh errorHandler) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, errorHandler: eh}
}

// ExportStudents 导出学员列表
// GET /api/v1/students/export?search=&status=&batch=
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "Invalid query parameters", err)
		return
	}

	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// InstallmentCalendar 分期到期日历订阅
// GET /api/v1/students/installments.ics?batch=
func (h *ExportHandler) InstallmentCalendar(c *gin.Context) {
	body, err := h.exportSvc.InstallmentCalendar(c.Request.Context(), c.Query("batch"))
	if err != nil {
		h.respond(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="installments.ics"`)
	c.Data(http.StatusOK, icsContentType, []byte(body))
}
