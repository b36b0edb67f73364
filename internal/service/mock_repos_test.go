package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User // key: id
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByRole(_ context.Context, role model.Role) (bool, error) {
	for _, u := range m.users {
		if strings.EqualFold(string(u.Role), string(role)) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ListExceptRole(_ context.Context, role model.Role) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role != role {
			cp := *u
			cp.PasswordHash = ""
			result = append(result, cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students  []*model.Student // 按写入顺序
	clock     time.Time
	createErr map[string]error // key: cnic，模拟存储层错误
	listErr   error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		createErr: make(map[string]error),
	}
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	if err, ok := m.createErr[s.CNIC]; ok {
		return err
	}
	if s.ReceiptID != "" {
		for _, ex := range m.students {
			if ex.ReceiptID == s.ReceiptID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.clock = m.clock.Add(time.Second)
	s.CreatedAt = m.clock
	s.UpdatedAt = m.clock
	cp := *s
	m.students = append(m.students, &cp)
	return nil
}

func (m *mockStudentRepo) find(id string) (int, bool) {
	for i, s := range m.students {
		if s.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if i, ok := m.find(id); ok {
		cp := *m.students[i]
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, f repository.StudentFilter) ([]model.Student, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	kw := strings.ToLower(f.Search)
	var result []model.Student
	for _, s := range m.students {
		if kw != "" && !strings.Contains(strings.ToLower(s.Name), kw) &&
			!strings.Contains(strings.ToLower(s.CNIC), kw) &&
			!strings.Contains(strings.ToLower(s.Number), kw) {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.Batch != "" && s.Batch != f.Batch {
			continue
		}
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *model.Student) error {
	i, ok := m.find(s.ID)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *s
	cp.CreatedAt = m.students[i].CreatedAt
	m.students[i] = &cp
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	i, ok := m.find(id)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.students = append(m.students[:i], m.students[i+1:]...)
	return nil
}

func (m *mockStudentRepo) FindByCnicBatch(_ context.Context, cnic, batch string) (*model.Student, error) {
	for _, s := range m.students {
		if s.CNIC == cnic && s.Batch == batch {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ApplyRecovery(_ context.Context, id string, upd repository.RecoveryUpdate) (*model.Student, error) {
	i, ok := m.find(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s := m.students[i]
	s.FeeReceived += upd.FeeReceived
	s.Pending = upd.Pending
	s.Status = upd.Status
	s.Method = upd.Method
	s.PaymentID = upd.PaymentID
	s.ReceiptID = upd.ReceiptID
	d := upd.LastPaidDate
	s.LastPaidDate = &d
	cp := *s
	return &cp, nil
}

func (m *mockStudentRepo) inScope(s *model.Student, scope repository.ReportScope) bool {
	if scope.Course != "" && s.Course != scope.Course {
		return false
	}
	if scope.From != nil && s.Date.Before(scope.From.Time) {
		return false
	}
	if scope.To != nil && !s.Date.Before(scope.To.Time) {
		return false
	}
	return true
}

func (m *mockStudentRepo) Summary(_ context.Context, scope repository.ReportScope) (repository.StudentSummary, error) {
	var out repository.StudentSummary
	for _, s := range m.students {
		if m.inScope(s, scope) {
			out.Count++
			out.Received += s.FeeReceived
			out.Pending += s.Pending
		}
	}
	return out, nil
}

func (m *mockStudentRepo) SumReceivedOn(_ context.Context, date model.Date) (float64, error) {
	var total float64
	for _, s := range m.students {
		if s.Date.Equal(date) {
			total += s.FeeReceived
		}
	}
	return total, nil
}

func (m *mockStudentRepo) CountByStatus(_ context.Context, scope repository.ReportScope) ([]repository.StatusCount, error) {
	counts := map[model.Status]int64{}
	for _, s := range m.students {
		if m.inScope(s, scope) {
			counts[s.Status]++
		}
	}
	var rows []repository.StatusCount
	for st, n := range counts {
		rows = append(rows, repository.StatusCount{Status: st, Count: n})
	}
	return rows, nil
}

func (m *mockStudentRepo) SumByMethod(_ context.Context, scope repository.ReportScope) ([]repository.MethodSum, error) {
	sums := map[string]float64{}
	for _, s := range m.students {
		if m.inScope(s, scope) {
			sums[strings.ToLower(strings.TrimSpace(s.Method))] += s.FeeReceived
		}
	}
	var rows []repository.MethodSum
	for method, v := range sums {
		rows = append(rows, repository.MethodSum{Method: method, Received: v})
	}
	return rows, nil
}

func (m *mockStudentRepo) SumByDay(_ context.Context, scope repository.ReportScope) ([]repository.DaySum, error) {
	byDay := map[string]*repository.DaySum{}
	for _, s := range m.students {
		if !m.inScope(s, scope) {
			continue
		}
		key := s.Date.String()
		if byDay[key] == nil {
			byDay[key] = &repository.DaySum{Date: s.Date}
		}
		byDay[key].Count++
		byDay[key].Received += s.FeeReceived
	}
	var rows []repository.DaySum
	for _, d := range byDay {
		rows = append(rows, *d)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date.Time) })
	return rows, nil
}

func (m *mockStudentRepo) SumByCourse(_ context.Context, scope repository.ReportScope) ([]repository.CourseSum, error) {
	byCourse := map[string]*repository.CourseSum{}
	for _, s := range m.students {
		if !m.inScope(s, scope) {
			continue
		}
		if byCourse[s.Course] == nil {
			byCourse[s.Course] = &repository.CourseSum{Course: s.Course}
		}
		byCourse[s.Course].Count++
		byCourse[s.Course].Received += s.FeeReceived
	}
	var rows []repository.CourseSum
	for _, c := range byCourse {
		rows = append(rows, *c)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Course < rows[j].Course
	})
	return rows, nil
}

// ── 测试辅助 ──

var errMockDB = errors.New("connection reset by peer")

func newMockRepository() (*repository.Repository, *mockUserRepo, *mockStudentRepo) {
	users := newMockUserRepo()
	students := newMockStudentRepo()
	return &repository.Repository{User: users, Student: students}, users, students
}

// fixedClock 固定 "现在" 为 2026-02-14 10:00（UTC）
func fixedClock() time.Time {
	return time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
}
