package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
)

var (
	ErrMonthYearPair = apperrors.Validation("month and year must be provided together")
)

// ReportService 报表接口；每次调用都重新查询，不做缓存
type ReportService interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	DailyReport(ctx context.Context, req *dto.DailyReportRequest) (*dto.DailyReport, error)
	CourseBreakdown(ctx context.Context, req *dto.CourseBreakdownRequest) (*dto.CourseBreakdown, error)
}

type reportService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// ────────────────────── DashboardStats ──────────────────────

func (s *reportService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	all := repository.ReportScope{}

	summary, err := s.repo.Student.Summary(ctx, all)
	if err != nil {
		return nil, s.dbError("汇总统计失败", err)
	}

	today := model.NewDate(s.now().In(s.loc))
	todayReceived, err := s.repo.Student.SumReceivedOn(ctx, today)
	if err != nil {
		return nil, s.dbError("今日实收统计失败", err)
	}

	counts, err := s.statusCounts(ctx, all)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalStudents: summary.Count,
		TotalReceived: summary.Received,
		TotalPending:  summary.Pending,
		TodayReceived: todayReceived,
		RecoveryCount: counts[string(model.StatusRecovery)],
		FullPaidCount: counts[string(model.StatusFullPaid)],
	}, nil
}

// ────────────────────── DailyReport ──────────────────────

func (s *reportService) DailyReport(ctx context.Context, req *dto.DailyReportRequest) (*dto.DailyReport, error) {
	month, year, err := parseMonthYear(req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	from, to := model.MonthRange(year, month)
	scope := repository.ReportScope{From: &from, To: &to}

	counts, err := s.statusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Student.Summary(ctx, scope)
	if err != nil {
		return nil, s.dbError("月度汇总失败", err)
	}

	methods, err := s.repo.Student.SumByMethod(ctx, scope)
	if err != nil {
		return nil, s.dbError("支付方式统计失败", err)
	}

	days, err := s.repo.Student.SumByDay(ctx, scope)
	if err != nil {
		return nil, s.dbError("按日统计失败", err)
	}

	report := &dto.DailyReport{
		Month:         month.String(),
		Year:          year,
		NewCount:      counts[string(model.StatusNew)],
		RecoveryCount: counts[string(model.StatusRecovery)],
		DropCount:     counts[string(model.StatusDrop)],
		TotalReceived: summary.Received,
		Methods:       bucketMethods(methods),
		Days:          make([]dto.DayTotal, 0, len(days)),
	}
	for _, d := range days {
		report.Days = append(report.Days, dto.DayTotal{
			Date:     d.Date.String(),
			Count:    d.Count,
			Received: d.Received,
		})
	}
	return report, nil
}

// bucketMethods 支付方式归入固定分组，"bank" 与 "bank transfer" 合并，未知方式忽略
func bucketMethods(rows []repository.MethodSum) dto.MethodTotals {
	var totals dto.MethodTotals
	for _, r := range rows {
		switch strings.Join(strings.Fields(strings.ToLower(r.Method)), " ") {
		case "jazzcash", "jazz cash":
			totals.JazzCash += r.Received
		case "easypaisa", "easy paisa":
			totals.EasyPaisa += r.Received
		case "bank", "bank transfer":
			totals.Bank += r.Received
		case "cash":
			totals.Cash += r.Received
		}
	}
	return totals
}

// ────────────────────── CourseBreakdown ──────────────────────

func (s *reportService) CourseBreakdown(ctx context.Context, req *dto.CourseBreakdownRequest) (*dto.CourseBreakdown, error) {
	scope := repository.ReportScope{Course: strings.TrimSpace(req.Course)}

	monthSet := strings.TrimSpace(req.Month) != ""
	yearSet := strings.TrimSpace(req.Year) != ""
	switch {
	case monthSet && yearSet:
		month, year, err := parseMonthYear(req.Month, req.Year)
		if err != nil {
			return nil, err
		}
		from, to := model.MonthRange(year, month)
		scope.From, scope.To = &from, &to
	case monthSet || yearSet:
		return nil, ErrMonthYearPair
	}

	courses, err := s.repo.Student.SumByCourse(ctx, scope)
	if err != nil {
		return nil, s.dbError("课程统计失败", err)
	}

	summary, err := s.repo.Student.Summary(ctx, scope)
	if err != nil {
		return nil, s.dbError("课程汇总失败", err)
	}

	counts, err := s.statusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}

	resp := &dto.CourseBreakdown{
		Courses: make([]dto.CourseStat, 0, len(courses)),
		Totals: dto.BreakdownTotals{
			Students: summary.Count,
			FullPaid: counts[string(model.StatusFullPaid)],
			Revenue:  summary.Received,
			Pending:  summary.Pending,
		},
		StatusCounts: counts,
	}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, dto.CourseStat{
			Course:   c.Course,
			Count:    c.Count,
			Received: c.Received,
		})
	}
	return resp, nil
}

// ── 辅助函数 ──

// statusCounts 所有已知状态均有键，缺失记为 0
func (s *reportService) statusCounts(ctx context.Context, scope repository.ReportScope) (map[string]int64, error) {
	rows, err := s.repo.Student.CountByStatus(ctx, scope)
	if err != nil {
		return nil, s.dbError("状态统计失败", err)
	}

	counts := make(map[string]int64, len(model.AllStatuses))
	for _, st := range model.AllStatuses {
		counts[string(st)] = 0
	}
	for _, r := range rows {
		if _, known := counts[string(r.Status)]; known {
			counts[string(r.Status)] += r.Count
		}
	}
	return counts, nil
}

func (s *reportService) dbError(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return apperrors.FromDB(err)
}

// parseMonthYear month 接受英文全称 / 三字母缩写 / 1-12，year 为四位数字
func parseMonthYear(monthStr, yearStr string) (time.Month, int, error) {
	month, ok := parseMonth(monthStr)
	if !ok {
		return 0, 0, apperrors.Validation("invalid month %q", strings.TrimSpace(monthStr))
	}

	yearStr = strings.TrimSpace(yearStr)
	year, err := strconv.Atoi(yearStr)
	if err != nil || len(yearStr) != 4 || year < 1900 {
		return 0, 0, apperrors.Validation("invalid year %q", yearStr)
	}
	return month, year, nil
}

func parseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return m, true
		}
	}
	return 0, false
}
