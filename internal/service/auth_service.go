package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
	"github.com/beingharisali/accounts-software-backend/pkg/jwt"
)

var (
	ErrAdminExists        = apperrors.Conflict("Admin already exists")
	ErrInvalidCredentials = apperrors.Authentication("Invalid Credentials")
	ErrUserNotFound       = apperrors.NotFound("User not found")
)

// AuthService 认证业务接口
type AuthService interface {
	RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── RegisterAdmin ──────────────────────

func (s *authService) RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.AuthResponse, error) {
	// 1. 快速预检；最终由 uniq_users_single_admin 索引兜底
	exists, err := s.repo.User.ExistsByRole(ctx, model.RoleAdmin)
	if err != nil {
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, apperrors.FromDB(err)
	}
	if exists {
		return nil, ErrAdminExists
	}

	// 2. 创建管理员
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        model.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if field, ok := apperrors.DuplicateField(err); ok && field == "role" {
			return nil, ErrAdminExists
		}
		s.logger.Warn("创建管理员失败", zap.Error(err))
		return nil, apperrors.FromDB(err)
	}

	s.logger.Info("管理员注册成功", zap.String("user_id", user.ID))

	// 3. 签发 Token
	return s.issue(user)
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, model.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, apperrors.FromDB(err)
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 签发 Token
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.jwtMgr.GenerateToken(user.ID, user.Name, string(user.Role))
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, apperrors.Internal("generate token", err)
	}
	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

// ────────────────────── Logout / CurrentUser ──────────────────────

// Logout 将 Token 加入黑名单直至其过期；未配置 Redis 时仅依赖客户端丢弃 Token
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return apperrors.Internal("logout", err)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.FromDB(err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// toUserResponse 脱敏并将角色转为小写展示
func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.Display(),
	}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
