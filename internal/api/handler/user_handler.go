package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/service"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// UserHandler 员工账号管理 HTTP 处理器（仅管理员）
type UserHandler struct {
	userSvc service.UserService
	errorHandler
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, eh errorHandler) *UserHandler {
	return &UserHandler{userSvc: userSvc, errorHandler: eh}
}

// CreateStaff 创建员工账号
// POST /api/v1/auth/create-staff
func (h *UserHandler) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Please provide name, email, password and role", err)
		return
	}

	result, err := h.userSvc.CreateStaff(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}

	response.Created(c, result.Msg, result)
}

// ListStaff 员工列表（不含管理员）
// GET /api/v1/auth/users
func (h *UserHandler) ListStaff(c *gin.Context) {
	users, err := h.userSvc.ListStaff(c.Request.Context())
	if err != nil {
		h.respond(c, err)
		return
	}

	response.OK(c, users)
}

// DeleteStaff 删除员工账号
// DELETE /api/v1/auth/user/:id
func (h *UserHandler) DeleteStaff(c *gin.Context) {
	if err := h.userSvc.DeleteStaff(c.Request.Context(), c.Param("id")); err != nil {
		h.respond(c, err)
		return
	}

	response.OKMsg(c, "User deleted successfully", nil)
}
