package service

import (
	"context"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
)

// ── 分期到期日历 ──────────────────────────────────────────────
//
// 职责：将尚有欠款学员的分期到期日导出为 iCalendar (RFC 5545)。
//
//   - 每个到期日一个全天事件，UID = <学员ID>-<序号>@accounts
//   - pending <= 0 的学员不输出
//   - 可按 batch 过滤
// ─────────────────────────────────────────────────────────────

const icsProductID = "-//accounts-software//instalments//EN"

func (s *exportService) InstallmentCalendar(ctx context.Context, batch string) (string, error) {
	filter := repository.StudentFilter{Batch: strings.TrimSpace(batch)}
	students, err := s.repo.Student.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询分期数据失败", zap.Error(err))
		return "", apperrors.FromDB(err)
	}

	now := s.now().UTC()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Instalment due dates")
	cal.SetXWRTimezone(s.loc.String())

	events := 0
	for i := range students {
		st := &students[i]
		if st.Pending <= 0 {
			continue
		}
		for n, due := range st.InstalmentDates() {
			ev := cal.AddEvent(fmt.Sprintf("%s-%d@accounts", st.ID, n+1))
			ev.SetDtStampTime(now)
			ev.SetAllDayStartAt(due.Time)
			ev.SetAllDayEndAt(due.AddDate(0, 0, 1))
			ev.SetSummary(fmt.Sprintf("Instalment %d due: %s", n+1, st.Name))
			ev.SetDescription(instalmentDescription(st))
			events++
		}
	}

	s.logger.Debug("生成分期日历", zap.Int("events", events), zap.String("batch", filter.Batch))
	return cal.Serialize(), nil
}

func instalmentDescription(st *model.Student) string {
	parts := []string{
		"CNIC: " + st.CNIC,
		fmt.Sprintf("Pending: %.2f", st.Pending),
	}
	if st.Course != "" {
		parts = append(parts, "Course: "+st.Course)
	}
	if st.Batch != "" {
		parts = append(parts, "Batch: "+st.Batch)
	}
	if st.Number != "" {
		parts = append(parts, "Contact: "+st.Number)
	}
	return strings.Join(parts, "\n")
}
