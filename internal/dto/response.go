package dto

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏，角色小写展示）
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}
