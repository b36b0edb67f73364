package dto

import "github.com/beingharisali/accounts-software-backend/internal/model"

// ── 学员模块 DTO ──

// StudentPayload 新增 / 批量新增的单条记录
// 日期字段为 "YYYY-MM-DD" 文本，由 Service 层解析校验
type StudentPayload struct {
	Date                string `json:"date"`
	Status              string `json:"status"`
	Name                string `json:"name"`
	Course              string `json:"course"`
	Batch               string `json:"batch"`
	Number              string `json:"number"`
	Email               string `json:"email"`
	Address             string `json:"address"`
	CNIC                string `json:"cnic"`
	TotalPayment        Amount `json:"totalPayment"`
	FeeReceived         Amount `json:"feeReceived"`
	Pending             Amount `json:"pending"`
	FirstInstalDueDate  string `json:"firstInstalDueDate"`
	SecondInstalDueDate string `json:"secondInstalDueDate"`
	ThirdInstalDueDate  string `json:"thirdInstalDueDate"`
	Method              string `json:"method"`
	PaymentID           string `json:"paymentId"`
	ReceiptID           string `json:"receiptId"`
	CSRName             string `json:"csrName"`
	Officer             string `json:"officer"`
	Branch              string `json:"branch"`
	LastPaidDate        string `json:"lastPaidDate"`
}

// UpdateStudentRequest 部分字段更新；nil 表示不修改
type UpdateStudentRequest struct {
	Date                *string `json:"date"`
	Status              *string `json:"status"`
	Name                *string `json:"name"`
	Course              *string `json:"course"`
	Batch               *string `json:"batch"`
	Number              *string `json:"number"`
	Email               *string `json:"email"`
	Address             *string `json:"address"`
	CNIC                *string `json:"cnic"`
	TotalPayment        *Amount `json:"totalPayment"`
	FeeReceived         *Amount `json:"feeReceived"`
	Pending             *Amount `json:"pending"`
	FirstInstalDueDate  *string `json:"firstInstalDueDate"`
	SecondInstalDueDate *string `json:"secondInstalDueDate"`
	ThirdInstalDueDate  *string `json:"thirdInstalDueDate"`
	Method              *string `json:"method"`
	PaymentID           *string `json:"paymentId"`
	ReceiptID           *string `json:"receiptId"`
	CSRName             *string `json:"csrName"`
	Officer             *string `json:"officer"`
	Branch              *string `json:"branch"`
	LastPaidDate        *string `json:"lastPaidDate"`
}

// StudentListRequest 列表筛选参数；status / batch 为 "All" 或空时不过滤
type StudentListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
	Status string `form:"status"`
	Batch  string `form:"batch"`
}

// ── 批量新增 ──

// 批量条目处理结果
const (
	BulkActionCreated = "created"
	BulkActionUpdated = "updated"
)

// BulkAddItem 单条处理结果
type BulkAddItem struct {
	Index   int            `json:"index"`
	Action  string         `json:"action"`
	Student *model.Student `json:"student"`
}

// BulkAddResponse 批量新增响应
type BulkAddResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Items   []BulkAddItem `json:"items"`
}

// BulkAddFailure 批量中途失败时随错误返回：失败位置与已提交的条目
type BulkAddFailure struct {
	FailedIndex int           `json:"failedIndex"`
	Processed   int           `json:"processed"`
	Items       []BulkAddItem `json:"items"`
}
