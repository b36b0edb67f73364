package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
)

var (
	ErrBulkEmpty       = apperrors.Validation("Student data missing or invalid: array expected")
	ErrStudentNotFound = apperrors.NotFound("Student not found")
)

// filterAll 前端下拉框 "All" 表示不过滤
const filterAll = "all"

// BulkAddError 批量新增在第 FailedIndex 条失败；此前的条目已提交
type BulkAddError struct {
	FailedIndex int
	Items       []dto.BulkAddItem
	Err         error
}

func (e *BulkAddError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.FailedIndex, e.Err)
}

func (e *BulkAddError) Unwrap() error { return e.Err }

// Failure 供 Handler 随错误响应返回
func (e *BulkAddError) Failure() dto.BulkAddFailure {
	return dto.BulkAddFailure{
		FailedIndex: e.FailedIndex,
		Processed:   len(e.Items),
		Items:       e.Items,
	}
}

// StudentService 学员记录业务接口
type StudentService interface {
	List(ctx context.Context, req *dto.StudentListRequest) ([]model.Student, error)
	GetAll(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id string) (*model.Student, error)
	Create(ctx context.Context, payload *dto.StudentPayload) (*model.Student, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*model.Student, error)
	Delete(ctx context.Context, id string) error
	BulkAdd(ctx context.Context, payloads []dto.StudentPayload) (*dto.BulkAddResponse, error)
	// ParseImportFile 解析导入的 xlsx，结果交给 BulkAdd 处理
	ParseImportFile(reader io.Reader) ([]dto.StudentPayload, error)
}

type studentService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例；loc 决定 "今天" 的判定
func NewStudentService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

func (s *studentService) today() model.Date {
	return model.NewDate(s.now().In(s.loc))
}

// ────────────────────── 查询 ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]model.Student, error) {
	filter, err := buildStudentFilter(req)
	if err != nil {
		return nil, err
	}

	students, err := s.repo.Student.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询学员列表失败", zap.Error(err))
		return nil, apperrors.FromDB(err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (s *studentService) GetAll(ctx context.Context) ([]model.Student, error) {
	return s.List(ctx, &dto.StudentListRequest{})
}

func (s *studentService) Get(ctx context.Context, id string) (*model.Student, error) {
	if !isUUID(id) {
		return nil, ErrStudentNotFound
	}
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, apperrors.FromDB(err)
	}
	return student, nil
}

// buildStudentFilter "All" / 空值不参与过滤；状态需为已知枚举
func buildStudentFilter(req *dto.StudentListRequest) (repository.StudentFilter, error) {
	filter := repository.StudentFilter{Search: strings.TrimSpace(req.Search)}

	if st := strings.TrimSpace(req.Status); st != "" && !strings.EqualFold(st, filterAll) {
		status, ok := model.ParseStatus(st)
		if !ok {
			return filter, apperrors.Validation("invalid status %q", st)
		}
		filter.Status = status
	}
	if b := strings.TrimSpace(req.Batch); b != "" && !strings.EqualFold(b, filterAll) {
		filter.Batch = b
	}
	return filter, nil
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, payload *dto.StudentPayload) (*model.Student, error) {
	student, err := payloadToStudent(payload, s.today())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Warn("新增学员失败", zap.String("cnic", student.CNIC), zap.Error(err))
		return nil, apperrors.FromDB(err)
	}
	return student, nil
}

// ────────────────────── BulkAdd ──────────────────────
//
// 逐条顺序处理（后面的条目可能依赖前面条目已写入）：
//   - RECOVERY：按 (cnic, batch) 查找最早记录，找到则累加实收并覆盖缴费字段；
//     找不到则按原样新增
//   - 其他状态：直接新增，不去重
//
// 非事务：第 i 条失败时，前 i 条已提交，错误中携带已处理条目。

func (s *studentService) BulkAdd(ctx context.Context, payloads []dto.StudentPayload) (*dto.BulkAddResponse, error) {
	if len(payloads) == 0 {
		return nil, ErrBulkEmpty
	}

	resp := &dto.BulkAddResponse{Items: make([]dto.BulkAddItem, 0, len(payloads))}

	for i := range payloads {
		item, err := s.addOne(ctx, &payloads[i])
		if err != nil {
			s.logger.Warn("批量新增中断",
				zap.Int("failed_index", i),
				zap.Int("processed", len(resp.Items)),
				zap.Error(err),
			)
			return nil, &BulkAddError{FailedIndex: i, Items: resp.Items, Err: err}
		}

		item.Index = i
		resp.Items = append(resp.Items, item)
		if item.Action == dto.BulkActionUpdated {
			resp.Updated++
		} else {
			resp.Created++
		}
	}

	resp.Success = true
	resp.Count = len(resp.Items)

	s.logger.Info("批量新增完成",
		zap.Int("created", resp.Created),
		zap.Int("updated", resp.Updated),
	)
	return resp, nil
}

func (s *studentService) addOne(ctx context.Context, p *dto.StudentPayload) (dto.BulkAddItem, error) {
	status, ok := model.ParseStatus(p.Status)
	if !ok {
		return dto.BulkAddItem{}, apperrors.Validation("invalid status %q", p.Status)
	}

	if status == model.StatusRecovery {
		merged, err := s.mergeRecovery(ctx, p)
		if err != nil {
			return dto.BulkAddItem{}, err
		}
		if merged != nil {
			return dto.BulkAddItem{Action: dto.BulkActionUpdated, Student: merged}, nil
		}
	}

	student, err := payloadToStudent(p, s.today())
	if err != nil {
		return dto.BulkAddItem{}, err
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		return dto.BulkAddItem{}, apperrors.FromDB(err)
	}
	return dto.BulkAddItem{Action: dto.BulkActionCreated, Student: student}, nil
}

// mergeRecovery 未找到匹配记录时返回 (nil, nil)
func (s *studentService) mergeRecovery(ctx context.Context, p *dto.StudentPayload) (*model.Student, error) {
	cnic := strings.TrimSpace(p.CNIC)
	if cnic == "" {
		return nil, apperrors.Validation("cnic is required")
	}

	existing, err := s.repo.Student.FindByCnicBatch(ctx, cnic, strings.TrimSpace(p.Batch))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.FromDB(err)
	}

	pending := p.Pending.Float64()
	status := model.StatusRecovery
	if pending <= 0 {
		status = model.StatusFullPaid
	}

	updated, err := s.repo.Student.ApplyRecovery(ctx, existing.ID, repository.RecoveryUpdate{
		FeeReceived:  p.FeeReceived.Float64(),
		Pending:      pending,
		Status:       status,
		Method:       strings.TrimSpace(p.Method),
		PaymentID:    strings.TrimSpace(p.PaymentID),
		ReceiptID:    strings.TrimSpace(p.ReceiptID),
		LastPaidDate: s.today(),
	})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return updated, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyPatch(student, req); err != nil {
		return nil, err
	}
	if err := validateStudent(student); err != nil {
		return nil, err
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Warn("更新学员失败", zap.String("id", id), zap.Error(err))
		return nil, apperrors.FromDB(err)
	}
	return student, nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrStudentNotFound
	}
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("删除学员失败", zap.String("id", id), zap.Error(err))
		return apperrors.FromDB(err)
	}
	s.logger.Info("学员记录已删除", zap.String("id", id))
	return nil
}

// ── 转换与校验 ──

// payloadToStudent 字段去空格；date 缺省为今天，其余日期可空
func payloadToStudent(p *dto.StudentPayload, today model.Date) (*model.Student, error) {
	status, ok := model.ParseStatus(p.Status)
	if !ok {
		return nil, apperrors.Validation("invalid status %q", p.Status)
	}

	date := today
	if strings.TrimSpace(p.Date) != "" {
		d, err := parseDateField("date", p.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	student := &model.Student{
		Date:         date,
		Status:       status,
		Name:         strings.TrimSpace(p.Name),
		Course:       strings.TrimSpace(p.Course),
		Batch:        strings.TrimSpace(p.Batch),
		Number:       strings.TrimSpace(p.Number),
		Email:        model.NormalizeEmail(p.Email),
		Address:      strings.TrimSpace(p.Address),
		CNIC:         strings.TrimSpace(p.CNIC),
		TotalPayment: p.TotalPayment.Float64(),
		FeeReceived:  p.FeeReceived.Float64(),
		Pending:      p.Pending.Float64(),
		Method:       strings.TrimSpace(p.Method),
		PaymentID:    strings.TrimSpace(p.PaymentID),
		ReceiptID:    strings.TrimSpace(p.ReceiptID),
		CSRName:      strings.TrimSpace(p.CSRName),
		Officer:      strings.TrimSpace(p.Officer),
		Branch:       strings.TrimSpace(p.Branch),
	}

	var err error
	if student.FirstInstalDueDate, err = parseOptionalDate("firstInstalDueDate", p.FirstInstalDueDate); err != nil {
		return nil, err
	}
	if student.SecondInstalDueDate, err = parseOptionalDate("secondInstalDueDate", p.SecondInstalDueDate); err != nil {
		return nil, err
	}
	if student.ThirdInstalDueDate, err = parseOptionalDate("thirdInstalDueDate", p.ThirdInstalDueDate); err != nil {
		return nil, err
	}
	if student.LastPaidDate, err = parseOptionalDate("lastPaidDate", p.LastPaidDate); err != nil {
		return nil, err
	}

	if err := validateStudent(student); err != nil {
		return nil, err
	}
	return student, nil
}

// applyPatch 仅覆盖请求中出现的字段
func applyPatch(st *model.Student, req *dto.UpdateStudentRequest) error {
	if req.Date != nil {
		d, err := parseDateField("date", *req.Date)
		if err != nil {
			return err
		}
		st.Date = d
	}
	if req.Status != nil {
		status, ok := model.ParseStatus(*req.Status)
		if !ok {
			return apperrors.Validation("invalid status %q", *req.Status)
		}
		st.Status = status
	}

	setString(&st.Name, req.Name)
	setString(&st.Course, req.Course)
	setString(&st.Batch, req.Batch)
	setString(&st.Number, req.Number)
	setString(&st.Address, req.Address)
	setString(&st.CNIC, req.CNIC)
	setString(&st.Method, req.Method)
	setString(&st.PaymentID, req.PaymentID)
	setString(&st.ReceiptID, req.ReceiptID)
	setString(&st.CSRName, req.CSRName)
	setString(&st.Officer, req.Officer)
	setString(&st.Branch, req.Branch)
	if req.Email != nil {
		st.Email = model.NormalizeEmail(*req.Email)
	}

	if req.TotalPayment != nil {
		st.TotalPayment = req.TotalPayment.Float64()
	}
	if req.FeeReceived != nil {
		st.FeeReceived = req.FeeReceived.Float64()
	}
	if req.Pending != nil {
		st.Pending = req.Pending.Float64()
	}

	dates := []struct {
		name   string
		target **model.Date
		value  *string
	}{
		{"firstInstalDueDate", &st.FirstInstalDueDate, req.FirstInstalDueDate},
		{"secondInstalDueDate", &st.SecondInstalDueDate, req.SecondInstalDueDate},
		{"thirdInstalDueDate", &st.ThirdInstalDueDate, req.ThirdInstalDueDate},
		{"lastPaidDate", &st.LastPaidDate, req.LastPaidDate},
	}
	for _, d := range dates {
		if d.value == nil {
			continue
		}
		parsed, err := parseOptionalDate(d.name, *d.value)
		if err != nil {
			return err
		}
		*d.target = parsed
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func validateStudent(st *model.Student) error {
	if st.Name == "" {
		return apperrors.Validation("name is required")
	}
	if st.CNIC == "" {
		return apperrors.Validation("cnic is required")
	}
	if _, ok := model.ParseStatus(string(st.Status)); !ok {
		return apperrors.Validation("invalid status %q", st.Status)
	}
	if st.Date.IsZero() {
		return apperrors.Validation("date is required")
	}
	return nil
}

func parseDateField(name, value string) (model.Date, error) {
	d, err := model.ParseDate(value)
	if err != nil {
		return model.Date{}, apperrors.Validation("%s must be a date in YYYY-MM-DD format", name)
	}
	return d, nil
}

// parseOptionalDate 空串表示清空
func parseOptionalDate(name, value string) (*model.Date, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := parseDateField(name, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
