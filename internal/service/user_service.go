package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
)

var (
	ErrStaffRoleAdmin   = apperrors.Validation("Cannot create an account with the admin role")
	ErrEmailTaken       = apperrors.Conflict("Email already registered")
	ErrStaffNotFound    = apperrors.Validation("User not found")
	ErrAdminUndeletable = apperrors.Validation("Admin account cannot be deleted")
)

// UserService 员工账号管理接口（仅管理员可调用）
type UserService interface {
	CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.CreateStaffResponse, error)
	ListStaff(ctx context.Context) ([]dto.UserResponse, error)
	DeleteStaff(ctx context.Context, id string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── CreateStaff ──────────────────────

func (s *userService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.CreateStaffResponse, error) {
	// 1. 角色校验：员工创建永远不能产生第二个管理员
	role, ok := model.ParseRole(req.Role)
	if role == model.RoleAdmin {
		return nil, ErrStaffRoleAdmin
	}
	if !ok {
		return nil, apperrors.Validation("invalid role %q", strings.TrimSpace(req.Role))
	}

	// 2. 邮箱唯一
	email := model.NormalizeEmail(req.Email)
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询邮箱失败", zap.Error(err))
		return nil, apperrors.FromDB(err)
	}

	// 3. 创建
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}
	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Warn("创建员工失败", zap.String("email", email), zap.Error(err))
		return nil, apperrors.FromDB(err)
	}

	s.logger.Info("员工账号已创建", zap.String("user_id", user.ID), zap.String("role", string(role)))

	return &dto.CreateStaffResponse{
		Msg:  "Staff member created successfully",
		User: toUserResponse(user),
	}, nil
}

// ────────────────────── ListStaff ──────────────────────

func (s *userService) ListStaff(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListExceptRole(ctx, model.RoleAdmin)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, apperrors.FromDB(err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── DeleteStaff ──────────────────────

func (s *userService) DeleteStaff(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrStaffNotFound
	}
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return apperrors.FromDB(err)
	}
	if user.Role == model.RoleAdmin {
		return ErrAdminUndeletable
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("删除员工失败", zap.String("user_id", id), zap.Error(err))
		return apperrors.FromDB(err)
	}

	s.logger.Info("员工账号已删除", zap.String("user_id", id))
	return nil
}

// isUUID 非法 ID 直接视为不存在，避免 postgres 报类型转换错误
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
