package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/service"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// StudentHandler 学员记录 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
	errorHandler
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService, eh errorHandler) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc, errorHandler: eh}
}

// List 学员列表，支持 search / status / batch 过滤
// GET /api/v1/students/all
func (h *StudentHandler) List(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "Invalid query parameters", err)
		return
	}

	students, err := h.studentSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}

	response.OK(c, students)
}

// Get 学员详情
// GET /api/v1/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, err)
		return
	}

	response.OK(c, student)
}

// Create 新增单条学员记录
// POST /api/v1/students/add
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.StudentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid student data", err)
		return
	}

	student, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}

	response.Created(c, "Student added successfully", student)
}

// BulkAdd 批量新增；RECOVERY 条目按 (cnic, batch) 合并到已有记录
// POST /api/v1/students/bulk-add
func (h *StudentHandler) BulkAdd(c *gin.Context) {
	var req []dto.StudentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respond(c, service.ErrBulkEmpty)
		return
	}

	h.runBulk(c, req)
}

// Import 上传 xlsx，解析后走批量新增流程
// POST /api/v1/students/import (multipart/form-data, field="file")
func (h *StudentHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.badRequest(c, "Please upload an Excel file in field \"file\"", err)
		return
	}
	defer file.Close()

	payloads, err := h.studentSvc.ParseImportFile(file)
	if err != nil {
		h.respond(c, err)
		return
	}

	h.runBulk(c, payloads)
}

// runBulk 中途失败时一并返回失败位置与已提交的条目
func (h *StudentHandler) runBulk(c *gin.Context, payloads []dto.StudentPayload) {
	result, err := h.studentSvc.BulkAdd(c.Request.Context(), payloads)
	if err != nil {
		var bulkErr *service.BulkAddError
		if errors.As(err, &bulkErr) {
			h.respondWithData(c, err, bulkErr.Failure())
			return
		}
		h.respond(c, err)
		return
	}

	response.Created(c, "Students processed successfully", result)
}

// Update 部分字段更新
// PUT /api/v1/students/update/:id
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid student data", err)
		return
	}

	student, err := h.studentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respond(c, err)
		return
	}

	response.OK(c, student)
}

// Delete 删除学员记录
// DELETE /api/v1/students/delete/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respond(c, err)
		return
	}

	response.OKMsg(c, "Student deleted successfully", nil)
}
