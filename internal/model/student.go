package model

import "strings"

// Status 学员缴费状态
type Status string

const (
	StatusNew      Status = "NEW"
	StatusFullPaid Status = "FULL PAID"
	StatusRecovery Status = "RECOVERY"
	StatusDrop     Status = "DROP"
	StatusFreeze   Status = "FREEZE"
)

// AllStatuses 报表中需要逐一列出的状态
var AllStatuses = []Status{StatusNew, StatusRecovery, StatusDrop, StatusFreeze, StatusFullPaid}

// ParseStatus 大小写不敏感；空串视为 NEW
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.Join(strings.Fields(s), " ")))
	switch st {
	case "":
		return StatusNew, true
	case StatusNew, StatusFullPaid, StatusRecovery, StatusDrop, StatusFreeze:
		return st, true
	}
	return st, false
}

// Student 学员报名/缴费记录表 — 对应 students
type Student struct {
	BaseModel
	Date                Date    `gorm:"type:date;not null;index:idx_students_date" json:"date"`
	Status              Status  `gorm:"type:varchar(20);not null;default:'NEW'" json:"status"`
	Name                string  `gorm:"type:varchar(150);not null" json:"name"`
	Course              string  `gorm:"type:varchar(150);not null;default:''" json:"course"`
	Batch               string  `gorm:"type:varchar(100);not null;default:'';index:idx_students_cnic_batch,priority:2;index:idx_students_batch" json:"batch"`
	Number              string  `gorm:"type:varchar(50);not null;default:''" json:"number"`
	Email               string  `gorm:"type:varchar(255);not null;default:''" json:"email"`
	Address             string  `gorm:"type:text;not null;default:''" json:"address"`
	CNIC                string  `gorm:"column:cnic;type:varchar(30);not null;index:idx_students_cnic_batch,priority:1" json:"cnic"`
	TotalPayment        float64 `gorm:"type:numeric(12,2);not null;default:0" json:"totalPayment"`
	FeeReceived         float64 `gorm:"type:numeric(12,2);not null;default:0" json:"feeReceived"`
	Pending             float64 `gorm:"type:numeric(12,2);not null;default:0" json:"pending"`
	FirstInstalDueDate  *Date   `gorm:"type:date" json:"firstInstalDueDate"`
	SecondInstalDueDate *Date   `gorm:"type:date" json:"secondInstalDueDate"`
	ThirdInstalDueDate  *Date   `gorm:"type:date" json:"thirdInstalDueDate"`
	Method              string  `gorm:"type:varchar(50);not null;default:''" json:"method"`
	PaymentID           string  `gorm:"type:varchar(100);not null;default:''" json:"paymentId"`
	ReceiptID           string  `gorm:"type:varchar(100);not null;default:'';uniqueIndex:uniq_students_receipt_id,where:receipt_id <> ''" json:"receiptId"`
	CSRName             string  `gorm:"column:csr_name;type:varchar(100);not null;default:''" json:"csrName"`
	Officer             string  `gorm:"type:varchar(100);not null;default:''" json:"officer"`
	Branch              string  `gorm:"type:varchar(100);not null;default:''" json:"branch"`
	LastPaidDate        *Date   `gorm:"type:date" json:"lastPaidDate"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// InstalmentDates 按顺序返回已设置的分期到期日
func (s *Student) InstalmentDates() []Date {
	var out []Date
	for _, d := range []*Date{s.FirstInstalDueDate, s.SecondInstalDueDate, s.ThirdInstalDueDate} {
		if d != nil && !d.IsZero() {
			out = append(out, *d)
		}
	}
	return out
}
