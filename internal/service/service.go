package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/beingharisali/accounts-software-backend/config"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	"github.com/beingharisali/accounts-software-backend/pkg/jwt"
)

// TokenBlacklist 登出黑名单（Redis 实现；不可用时传 nil）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	User    UserService
	Student StudentService
	Report  ReportService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	loc := cfg.App.Location()
	return &Service{
		Auth:    NewAuthService(repo, jwtMgr, blacklist, logger),
		User:    NewUserService(repo, logger),
		Student: NewStudentService(repo, loc, logger),
		Report:  NewReportService(repo, loc, logger),
		Export:  NewExportService(repo, loc, logger),
	}
}
