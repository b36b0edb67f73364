package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/beingharisali/accounts-software-backend/internal/model"
)

// StudentFilter 列表筛选条件；空字段不参与过滤
type StudentFilter struct {
	Search string
	Status model.Status
	Batch  string
}

// ReportScope 报表统计范围；日期区间为 [From, To)
type ReportScope struct {
	Course string
	From   *model.Date
	To     *model.Date
}

// RecoveryUpdate 回款合并：FeeReceived 为增量，其余字段直接覆盖
type RecoveryUpdate struct {
	FeeReceived  float64
	Pending      float64
	Status       model.Status
	Method       string
	PaymentID    string
	ReceiptID    string
	LastPaidDate model.Date
}

// ── 聚合结果 ──

// StudentSummary 记录数与金额合计
type StudentSummary struct {
	Count    int64
	Received float64
	Pending  float64
}

// StatusCount 按状态计数
type StatusCount struct {
	Status model.Status
	Count  int64
}

// MethodSum 按支付方式（已小写去空格）汇总实收
type MethodSum struct {
	Method   string
	Received float64
}

// DaySum 按日期汇总
type DaySum struct {
	Date     model.Date
	Count    int64
	Received float64
}

// CourseSum 按课程汇总
type CourseSum struct {
	Course   string
	Count    int64
	Received float64
}

// StudentRepository 学员记录数据访问接口
type StudentRepository interface {
	List(ctx context.Context, filter StudentFilter) ([]model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error

	// FindByCnicBatch 返回 (cnic, batch) 下最早创建的一条
	FindByCnicBatch(ctx context.Context, cnic, batch string) (*model.Student, error)
	// ApplyRecovery 单条 UPDATE 完成累加与覆盖，返回更新后的记录
	ApplyRecovery(ctx context.Context, id string, upd RecoveryUpdate) (*model.Student, error)

	Summary(ctx context.Context, scope ReportScope) (StudentSummary, error)
	SumReceivedOn(ctx context.Context, date model.Date) (float64, error)
	CountByStatus(ctx context.Context, scope ReportScope) ([]StatusCount, error)
	SumByMethod(ctx context.Context, scope ReportScope) ([]MethodSum, error)
	SumByDay(ctx context.Context, scope ReportScope) ([]DaySum, error)
	SumByCourse(ctx context.Context, scope ReportScope) ([]CourseSum, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

// likeEscaper 搜索词按字面子串匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *studentRepo) List(ctx context.Context, filter StudentFilter) ([]model.Student, error) {
	var students []model.Student

	db := r.db.WithContext(ctx).Model(&model.Student{})
	if kw := strings.ToLower(strings.TrimSpace(filter.Search)); kw != "" {
		like := "%" + likeEscaper.Replace(kw) + "%"
		db = db.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(cnic) LIKE ? ESCAPE '\' OR LOWER(number) LIKE ? ESCAPE '\'`, like, like, like)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", string(filter.Status))
	}
	if filter.Batch != "" {
		db = db.Where("batch = ?", filter.Batch)
	}

	err := db.Order("created_at DESC").Find(&students).Error
	return students, err
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// Update 全字段保存，created_at 不参与更新
func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).
		Model(student).
		Select("*").
		Omit("id", "created_at").
		Updates(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Student{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepo) FindByCnicBatch(ctx context.Context, cnic, batch string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("cnic = ? AND batch = ?", cnic, batch).
		Order("created_at ASC").
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ApplyRecovery(ctx context.Context, id string, upd RecoveryUpdate) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Student{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"fee_received":   gorm.Expr("fee_received + ?", upd.FeeReceived),
				"pending":        upd.Pending,
				"status":         string(upd.Status),
				"method":         upd.Method,
				"payment_id":     upd.PaymentID,
				"receipt_id":     upd.ReceiptID,
				"last_paid_date": upd.LastPaidDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&student).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ── 聚合查询 ──

func (r *studentRepo) scoped(ctx context.Context, scope ReportScope) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Student{})
	if scope.Course != "" {
		db = db.Where("course = ?", scope.Course)
	}
	if scope.From != nil {
		db = db.Where("date >= ?", *scope.From)
	}
	if scope.To != nil {
		db = db.Where("date < ?", *scope.To)
	}
	return db
}

func (r *studentRepo) Summary(ctx context.Context, scope ReportScope) (StudentSummary, error) {
	var out StudentSummary
	err := r.scoped(ctx, scope).
		Select("COUNT(*) AS count, COALESCE(SUM(fee_received), 0) AS received, COALESCE(SUM(pending), 0) AS pending").
		Scan(&out).Error
	return out, err
}

func (r *studentRepo) SumReceivedOn(ctx context.Context, date model.Date) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Select("COALESCE(SUM(fee_received), 0)").
		Where("date = ?", date).
		Row().Scan(&total)
	return total, err
}

func (r *studentRepo) CountByStatus(ctx context.Context, scope ReportScope) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.scoped(ctx, scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *studentRepo) SumByMethod(ctx context.Context, scope ReportScope) ([]MethodSum, error) {
	var rows []MethodSum
	err := r.scoped(ctx, scope).
		Select("LOWER(TRIM(method)) AS method, COALESCE(SUM(fee_received), 0) AS received").
		Group("LOWER(TRIM(method))").
		Scan(&rows).Error
	return rows, err
}

func (r *studentRepo) SumByDay(ctx context.Context, scope ReportScope) ([]DaySum, error) {
	var rows []DaySum
	err := r.scoped(ctx, scope).
		Select("date, COUNT(*) AS count, COALESCE(SUM(fee_received), 0) AS received").
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *studentRepo) SumByCourse(ctx context.Context, scope ReportScope) ([]CourseSum, error) {
	var rows []CourseSum
	err := r.scoped(ctx, scope).
		Select("course, COUNT(*) AS count, COALESCE(SUM(fee_received), 0) AS received").
		Group("course").
		Order("COUNT(*) DESC, course ASC").
		Scan(&rows).Error
	return rows, err
}
