package service

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
)

const maxImportRows = 2000

var (
	ErrImportNoData      = apperrors.Validation("Excel file has no data rows")
	ErrImportTooManyRows = apperrors.Validation("Excel file exceeds %d rows", maxImportRows)
	ErrImportBadHeader   = apperrors.Validation("Excel header must contain Name and CNIC columns")
)

// importColumns 规范化后的表头 -> 字段
var importColumns = map[string]string{
	"date":                "date",
	"admissiondate":       "date",
	"status":              "status",
	"name":                "name",
	"studentname":         "name",
	"course":              "course",
	"batch":               "batch",
	"number":              "number",
	"contact":             "number",
	"contactnumber":       "number",
	"phone":               "number",
	"email":               "email",
	"address":             "address",
	"cnic":                "cnic",
	"totalpayment":        "totalPayment",
	"totalfee":            "totalPayment",
	"feereceived":         "feeReceived",
	"received":            "feeReceived",
	"pending":             "pending",
	"firstinstalduedate":  "firstInstalDueDate",
	"secondinstalduedate": "secondInstalDueDate",
	"thirdinstalduedate":  "thirdInstalDueDate",
	"method":              "method",
	"paymentmethod":       "method",
	"paymentid":           "paymentId",
	"receiptid":           "receiptId",
	"csrname":             "csrName",
	"csr":                 "csrName",
	"officer":             "officer",
	"branch":              "branch",
	"lastpaiddate":        "lastPaidDate",
}

var importDateFields = map[string]bool{
	"date":                true,
	"firstInstalDueDate":  true,
	"secondInstalDueDate": true,
	"thirdInstalDueDate":  true,
	"lastPaidDate":        true,
}

// ParseImportFile 读取第一个工作表；表头列序灵活，全空行跳过
func (s *studentService) ParseImportFile(reader io.Reader) ([]dto.StudentPayload, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperrors.Validation("unable to read Excel file: %v", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.Validation("unable to read sheet %q: %v", sheetName, err)
	}
	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	colIndex := parseImportHeader(excelRows[0])
	if _, ok := colIndex["name"]; !ok {
		return nil, ErrImportBadHeader
	}
	if _, ok := colIndex["cnic"]; !ok {
		return nil, ErrImportBadHeader
	}

	var payloads []dto.StudentPayload
	for i := 1; i < len(excelRows); i++ {
		values := make(map[string]string, len(colIndex))
		empty := true
		for field, idx := range colIndex {
			if idx >= len(excelRows[i]) {
				continue
			}
			v := strings.TrimSpace(excelRows[i][idx])
			if v == "" {
				continue
			}
			if importDateFields[field] {
				v = excelDate(v)
			}
			values[field] = v
			empty = false
		}
		if empty {
			continue
		}
		payloads = append(payloads, rowToPayload(values))
	}

	if len(payloads) == 0 {
		return nil, ErrImportNoData
	}
	if len(payloads) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return payloads, nil
}

// parseImportHeader 表头忽略大小写、空格、下划线与连字符
func parseImportHeader(header []string) map[string]int {
	idx := make(map[string]int)
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "", ".", "")
	for i, h := range header {
		key := replacer.Replace(strings.ToLower(strings.TrimSpace(h)))
		if field, ok := importColumns[key]; ok {
			if _, seen := idx[field]; !seen {
				idx[field] = i
			}
		}
	}
	return idx
}

// excelDate 日期单元格以序列号存储时转换为 YYYY-MM-DD
func excelDate(v string) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format(model.DateLayout)
}

func rowToPayload(v map[string]string) dto.StudentPayload {
	return dto.StudentPayload{
		Date:                v["date"],
		Status:              v["status"],
		Name:                v["name"],
		Course:              v["course"],
		Batch:               v["batch"],
		Number:              v["number"],
		Email:               v["email"],
		Address:             v["address"],
		CNIC:                v["cnic"],
		TotalPayment:        dto.ParseAmount(v["totalPayment"]),
		FeeReceived:         dto.ParseAmount(v["feeReceived"]),
		Pending:             dto.ParseAmount(v["pending"]),
		FirstInstalDueDate:  v["firstInstalDueDate"],
		SecondInstalDueDate: v["secondInstalDueDate"],
		ThirdInstalDueDate:  v["thirdInstalDueDate"],
		Method:              v["method"],
		PaymentID:           v["paymentId"],
		ReceiptID:           v["receiptId"],
		CSRName:             v["csrName"],
		Officer:             v["officer"],
		Branch:              v["branch"],
		LastPaidDate:        v["lastPaidDate"],
	}
}
