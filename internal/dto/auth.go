package dto

// ── 认证模块 DTO ──

// RegisterAdminRequest 管理员注册请求（全局仅一次）
type RegisterAdminRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateStaffRequest 管理员创建员工账号
type CreateStaffRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"     binding:"required"`
}

// AuthResponse 注册 / 登录成功响应
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreateStaffResponse 创建员工响应（不下发 Token，需员工自行登录）
type CreateStaffResponse struct {
	Msg  string       `json:"msg"`
	User UserResponse `json:"user"`
}
