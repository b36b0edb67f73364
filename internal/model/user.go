package model

import "strings"

// Role 账号角色（入库统一大写）
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleAccountant Role = "ACCOUNTANT"
	RoleCSR        Role = "CSR"
	RoleStaff      Role = "STAFF"
)

// StaffRoles 可由管理员创建的角色
var StaffRoles = []Role{RoleManager, RoleAccountant, RoleCSR, RoleStaff}

// ParseRole 去空格并大写后匹配已知角色
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleManager, RoleAccountant, RoleCSR, RoleStaff:
		return r, true
	}
	return r, false
}

// Display 对外展示时使用小写
func (r Role) Display() string { return strings.ToLower(string(r)) }

// User 用户表 — 对应 users
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_users_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'STAFF';uniqueIndex:uniq_users_single_admin,where:role = 'ADMIN'" json:"role"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// NormalizeEmail 邮箱统一去空格、小写后存储与查询
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
