package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/beingharisali/accounts-software-backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByRole(ctx context.Context, role model.Role) (bool, error)
	ListExceptRole(ctx context.Context, role model.Role) ([]model.User, error)
	Delete(ctx context.Context, id string) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByRole 角色比较不区分大小写
func (r *userRepo) ExistsByRole(ctx context.Context, role model.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("UPPER(role) = ?", string(role)).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

// ListExceptRole 不含密码哈希，按创建时间倒序
func (r *userRepo) ListExceptRole(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "role", "created_at", "updated_at").
		Where("role <> ?", string(role)).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
