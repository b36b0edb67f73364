package dto

// ── 报表模块 DTO ──

// DashboardStats 仪表盘汇总
type DashboardStats struct {
	TotalStudents int64   `json:"totalStudents"`
	TotalReceived float64 `json:"totalReceived"`
	TotalPending  float64 `json:"totalPending"`
	TodayReceived float64 `json:"todayReceived"`
	RecoveryCount int64   `json:"recoveryCount"`
	FullPaidCount int64   `json:"fullPaidCount"`
}

// DailyReportRequest 月报查询：month 可为英文月份名或 1-12
type DailyReportRequest struct {
	Month string `form:"month" binding:"required"`
	Year  string `form:"year"  binding:"required"`
}

// MethodTotals 按支付方式汇总的实收金额
type MethodTotals struct {
	JazzCash  float64 `json:"jazzcash"`
	EasyPaisa float64 `json:"easypaisa"`
	Bank      float64 `json:"bank"`
	Cash      float64 `json:"cash"`
}

// DayTotal 当月某一天的汇总
type DayTotal struct {
	Date     string  `json:"date"`
	Count    int64   `json:"count"`
	Received float64 `json:"received"`
}

// DailyReport 月度收款报表
type DailyReport struct {
	Month         string       `json:"month"`
	Year          int          `json:"year"`
	NewCount      int64        `json:"newCount"`
	RecoveryCount int64        `json:"recoveryCount"`
	DropCount     int64        `json:"dropCount"`
	TotalReceived float64      `json:"totalReceived"`
	Methods       MethodTotals `json:"methods"`
	Days          []DayTotal   `json:"days"`
}

// CourseBreakdownRequest 课程统计筛选，均为可选
type CourseBreakdownRequest struct {
	Course string `form:"course"`
	Month  string `form:"month"`
	Year   string `form:"year"`
}

// CourseStat 单个课程的人数与实收
type CourseStat struct {
	Course   string  `json:"course"`
	Count    int64   `json:"count"`
	Received float64 `json:"received"`
}

// BreakdownTotals 筛选范围内的总计
type BreakdownTotals struct {
	Students int64   `json:"students"`
	FullPaid int64   `json:"fullPaid"`
	Revenue  float64 `json:"revenue"`
	Pending  float64 `json:"pending"`
}

// CourseBreakdown 课程统计响应
type CourseBreakdown struct {
	Courses      []CourseStat     `json:"courses"`
	Totals       BreakdownTotals  `json:"totals"`
	StatusCounts map[string]int64 `json:"statusCounts"`
}
