package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/service"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// ReportHandler 报表 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
	errorHandler
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService, eh errorHandler) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, errorHandler: eh}
}

// DashboardStats 仪表盘汇总
// GET /api/v1/students/stats
func (h *ReportHandler) DashboardStats(c *gin.Context) {
	stats, err := h.reportSvc.DashboardStats(c.Request.Context())
	if err != nil {
		h.respond(c, err)
		return
	}
	response.OK(c, stats)
}

// DailyReport 月度收款报表
// GET /api/v1/students/daily-report?month=&year=
func (h *ReportHandler) DailyReport(c *gin.Context) {
	var req dto.DailyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "month and year are required", err)
		return
	}

	report, err := h.reportSvc.DailyReport(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}
	response.OK(c, report)
}

// CourseBreakdown 课程统计
// GET /api/v1/students/course-breakdown?course=&month=&year=
func (h *ReportHandler) CourseBreakdown(c *gin.Context) {
	var req dto.CourseBreakdownRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "Invalid query parameters", err)
		return
	}

	breakdown, err := h.reportSvc.CourseBreakdown(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}
	response.OK(c, breakdown)
}
