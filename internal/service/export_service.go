package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/repository"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = apperrors.Internal("Failed to generate Excel file", nil)
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 学员列表导出为 Excel (.xlsx)，筛选条件与列表接口一致
//   - 分期到期日导出为 iCalendar，供日历客户端订阅
//   - 导出内容以内存缓冲返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportStudents 导出学员列表为 Excel，返回内容与建议文件名
	ExportStudents(ctx context.Context, req *dto.StudentListRequest) (*bytes.Buffer, string, error)
	// InstallmentCalendar 生成尚有欠款学员的分期到期日历
	InstallmentCalendar(ctx context.Context, batch string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// exportColumns 表头与取值
var exportColumns = []struct {
	title string
	width float64
	value func(s *model.Student) interface{}
}{
	{"Date", 12, func(s *model.Student) interface{} { return s.Date.String() }},
	{"Status", 12, func(s *model.Student) interface{} { return string(s.Status) }},
	{"Name", 22, func(s *model.Student) interface{} { return s.Name }},
	{"Course", 18, func(s *model.Student) interface{} { return s.Course }},
	{"Batch", 10, func(s *model.Student) interface{} { return s.Batch }},
	{"Number", 15, func(s *model.Student) interface{} { return s.Number }},
	{"Email", 24, func(s *model.Student) interface{} { return s.Email }},
	{"CNIC", 17, func(s *model.Student) interface{} { return s.CNIC }},
	{"Total Payment", 13, func(s *model.Student) interface{} { return s.TotalPayment }},
	{"Fee Received", 13, func(s *model.Student) interface{} { return s.FeeReceived }},
	{"Pending", 11, func(s *model.Student) interface{} { return s.Pending }},
	{"First Instal Due Date", 14, func(s *model.Student) interface{} { return dateText(s.FirstInstalDueDate) }},
	{"Second Instal Due Date", 14, func(s *model.Student) interface{} { return dateText(s.SecondInstalDueDate) }},
	{"Third Instal Due Date", 14, func(s *model.Student) interface{} { return dateText(s.ThirdInstalDueDate) }},
	{"Method", 12, func(s *model.Student) interface{} { return s.Method }},
	{"Payment ID", 14, func(s *model.Student) interface{} { return s.PaymentID }},
	{"Receipt ID", 14, func(s *model.Student) interface{} { return s.ReceiptID }},
	{"CSR Name", 14, func(s *model.Student) interface{} { return s.CSRName }},
	{"Officer", 14, func(s *model.Student) interface{} { return s.Officer }},
	{"Branch", 12, func(s *model.Student) interface{} { return s.Branch }},
	{"Last Paid Date", 14, func(s *model.Student) interface{} { return dateText(s.LastPaidDate) }},
}

// ═══════════════════════════════════════════════════════════
// ExportStudents — 导出学员列表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "Students"，首行为表头
//   - 列顺序与导入模板一致，导出文件可直接回导
//   - 末行为实收 / 欠款合计

func (s *exportService) ExportStudents(ctx context.Context, req *dto.StudentListRequest) (*bytes.Buffer, string, error) {
	filter, err := buildStudentFilter(req)
	if err != nil {
		return nil, "", err
	}

	students, err := s.repo.Student.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询导出数据失败", zap.Error(err))
		return nil, "", apperrors.FromDB(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Students"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	for i, col := range exportColumns {
		name := colName(i)
		f.SetColWidth(sheetName, name, name, col.width)
		f.SetCellValue(sheetName, cell(name, 1), col.title)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(exportColumns)-1), 1), headerStyle)

	// 数据行
	var received, pending float64
	row := 2
	for i := range students {
		st := &students[i]
		for c, col := range exportColumns {
			f.SetCellValue(sheetName, cell(colName(c), row), col.value(st))
		}
		received += st.FeeReceived
		pending += st.Pending
		row++
	}

	// 合计行
	f.SetCellValue(sheetName, cell("A", row), "Total")
	f.SetCellValue(sheetName, cell(colName(9), row), received)
	f.SetCellValue(sheetName, cell(colName(10), row), pending)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("students_%s.xlsx", s.now().In(s.loc).Format("2006-01-02"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func dateText(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
