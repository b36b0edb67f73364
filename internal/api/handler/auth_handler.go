package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/service"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	errorHandler
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, eh errorHandler) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, errorHandler: eh}
}

// RegisterAdmin 注册唯一的管理员账号
// POST /api/v1/auth/register-admin
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req dto.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Please provide name, a valid email and a password of at least 6 characters", err)
		return
	}

	result, err := h.authSvc.RegisterAdmin(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}

	response.Created(c, "Admin registered successfully", result)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Please provide email and password", err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 用户登出，当前 Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := TokenMeta(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		h.respond(c, err)
		return
	}
	response.OKMsg(c, "Logged out successfully", nil)
}

// Me 当前登录用户
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.respond(c, err)
		return
	}

	response.OK(c, user)
}
