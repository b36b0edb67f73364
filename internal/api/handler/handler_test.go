package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/internal/dto"
	"github.com/beingharisali/accounts-software-backend/internal/model"
	"github.com/beingharisali/accounts-software-backend/internal/service"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.AuthResponse
	registerErr    error
	loginResult    *dto.AuthResponse
	loginErr       error
	logoutErr      error
	logoutJTI      string
	currentResult  *dto.UserResponse
	currentErr     error
}

func (m *mockAuthService) RegisterAdmin(_ context.Context, _ *dto.RegisterAdminRequest) (*dto.AuthResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) CurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.currentResult, m.currentErr
}

// ── Mock UserService ──

type mockUserService struct {
	createResult *dto.CreateStaffResponse
	createErr    error
	listResult   []dto.UserResponse
	listErr      error
	deleteErr    error
}

func (m *mockUserService) CreateStaff(_ context.Context, _ *dto.CreateStaffRequest) (*dto.CreateStaffResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockUserService) ListStaff(_ context.Context) ([]dto.UserResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockUserService) DeleteStaff(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	listResult   []model.Student
	listErr      error
	lastListReq  *dto.StudentListRequest
	getResult    *model.Student
	getErr       error
	createResult *model.Student
	createErr    error
	updateResult *model.Student
	updateErr    error
	deleteErr    error
	bulkResult   *dto.BulkAddResponse
	bulkErr      error
	bulkPayloads []dto.StudentPayload
	importResult []dto.StudentPayload
	importErr    error
}

func (m *mockStudentService) List(_ context.Context, req *dto.StudentListRequest) ([]model.Student, error) {
	m.lastListReq = req
	return m.listResult, m.listErr
}
func (m *mockStudentService) GetAll(_ context.Context) ([]model.Student, error) {
	return m.listResult, m.listErr
}
func (m *mockStudentService) Get(_ context.Context, _ string) (*model.Student, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) Create(_ context.Context, _ *dto.StudentPayload) (*model.Student, error) {
	return m.createResult, m.createErr
}
func (m *mockStudentService) Update(_ context.Context, _ string, _ *dto.UpdateStudentRequest) (*model.Student, error) {
	return m.updateResult, m.updateErr
}
func (m *mockStudentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockStudentService) BulkAdd(_ context.Context, payloads []dto.StudentPayload) (*dto.BulkAddResponse, error) {
	m.bulkPayloads = payloads
	return m.bulkResult, m.bulkErr
}
func (m *mockStudentService) ParseImportFile(_ io.Reader) ([]dto.StudentPayload, error) {
	return m.importResult, m.importErr
}

// ── Mock ReportService ──

type mockReportService struct {
	statsResult  *dto.DashboardStats
	dailyResult  *dto.DailyReport
	dailyErr     error
	courseResult *dto.CourseBreakdown
	courseErr    error
}

func (m *mockReportService) DashboardStats(_ context.Context) (*dto.DashboardStats, error) {
	return m.statsResult, nil
}
func (m *mockReportService) DailyReport(_ context.Context, _ *dto.DailyReportRequest) (*dto.DailyReport, error) {
	return m.dailyResult, m.dailyErr
}
func (m *mockReportService) CourseBreakdown(_ context.Context, _ *dto.CourseBreakdownRequest) (*dto.CourseBreakdown, error) {
	return m.courseResult, m.courseErr
}

// ── Mock ExportService ──

type mockExportService struct {
	xlsx    []byte
	icsBody string
	err     error
}

func (m *mockExportService) ExportStudents(_ context.Context, _ *dto.StudentListRequest) (*bytes.Buffer, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return bytes.NewBuffer(m.xlsx), "students_2026-02-14.xlsx", nil
}
func (m *mockExportService) InstallmentCalendar(_ context.Context, _ string) (string, error) {
	return m.icsBody, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

var devErrors = errorHandler{production: false}

func setAuth(c *gin.Context) {
	c.Set(CtxUserID, "test-user-id")
	c.Set(CtxRole, "ADMIN")
	c.Set(CtxTokenJTI, "test-jti")
	c.Set(CtxTokenExp, time.Now().Add(15*time.Minute))
}

// serve 注册单个路由并执行请求；auth=true 时模拟 JWT 中间件注入
func serve(method, path, target string, body io.Reader, contentType string, auth bool, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	handlers := []gin.HandlerFunc{}
	if auth {
		handlers = append(handlers, func(c *gin.Context) { setAuth(c); c.Next() })
	}
	handlers = append(handlers, h)
	r.Handle(method, path, handlers...)

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_RegisterAdmin_Created(t *testing.T) {
	mock := &mockAuthService{registerResult: &dto.AuthResponse{
		User:  dto.UserResponse{ID: "u1", Role: "admin"},
		Token: "tok",
	}}
	h := NewAuthHandler(mock, devErrors)

	w := serve("POST", "/auth/register-admin", "/auth/register-admin", jsonBody(dto.RegisterAdminRequest{
		Name: "Owner", Email: "owner@example.com", Password: "secret123",
	}), "application/json", false, h.RegisterAdmin)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if !resp.Success || resp.Code != 0 {
		t.Errorf("expected success envelope, got %+v", resp)
	}
}

func TestAuthHandler_RegisterAdmin_AlreadyExists(t *testing.T) {
	mock := &mockAuthService{registerErr: service.ErrAdminExists}
	h := NewAuthHandler(mock, devErrors)

	w := serve("POST", "/auth/register-admin", "/auth/register-admin", jsonBody(dto.RegisterAdminRequest{
		Name: "Owner", Email: "owner@example.com", Password: "secret123",
	}), "application/json", false, h.RegisterAdmin)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Msg != "Admin already exists" || resp.Code != codeConflict {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_RegisterAdmin_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, devErrors)

	w := serve("POST", "/auth/register-admin", "/auth/register-admin", jsonBody(dto.RegisterAdminRequest{
		Name: "Owner", Email: "owner@example.com", Password: "123",
	}), "application/json", false, h.RegisterAdmin)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{loginResult: &dto.AuthResponse{Token: "test-token"}}
	h := NewAuthHandler(mock, devErrors)

	w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{
		Email: "a@example.com", Password: "secret123",
	}), "application/json", false, h.Login)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, _ := resp.Data.(map[string]interface{})
	if data["token"] != "test-token" {
		t.Errorf("expected token in data, got %v", resp.Data)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, devErrors)

	w := serve("POST", "/auth/login", "/auth/login", strings.NewReader("invalid json"), "application/json", false, h.Login)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != codeInvalidParam {
		t.Errorf("expected code %d, got %d", codeInvalidParam, resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock, devErrors)

	w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{
		Email: "a@example.com", Password: "wrong",
	}), "application/json", false, h.Login)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != codeUnauthenticated || resp.Msg != "Invalid Credentials" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Logout_PassesTokenID(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, devErrors)

	w := serve("POST", "/auth/logout", "/auth/logout", nil, "", true, h.Logout)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "test-jti" {
		t.Errorf("expected jti test-jti, got %q", mock.logoutJTI)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, devErrors)

	w := serve("GET", "/auth/me", "/auth/me", nil, "", false, h.Me)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mock := &mockAuthService{currentResult: &dto.UserResponse{ID: "test-user-id", Role: "admin"}}
	h := NewAuthHandler(mock, devErrors)

	w := serve("GET", "/auth/me", "/auth/me", nil, "", true, h.Me)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UserHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUserHandler_CreateStaff_Created(t *testing.T) {
	mock := &mockUserService{createResult: &dto.CreateStaffResponse{
		Msg:  "Staff member created successfully",
		User: dto.UserResponse{ID: "s1", Role: "csr"},
	}}
	h := NewUserHandler(mock, devErrors)

	w := serve("POST", "/auth/create-staff", "/auth/create-staff", jsonBody(dto.CreateStaffRequest{
		Name: "Sara", Email: "sara@example.com", Password: "secret123", Role: "csr",
	}), "application/json", true, h.CreateStaff)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Msg != "Staff member created successfully" {
		t.Errorf("unexpected msg %q", resp.Msg)
	}
}

func TestUserHandler_CreateStaff_AdminRole(t *testing.T) {
	mock := &mockUserService{createErr: service.ErrStaffRoleAdmin}
	h := NewUserHandler(mock, devErrors)

	w := serve("POST", "/auth/create-staff", "/auth/create-staff", jsonBody(dto.CreateStaffRequest{
		Name: "Sara", Email: "sara@example.com", Password: "secret123", Role: "admin",
	}), "application/json", true, h.CreateStaff)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUserHandler_DeleteStaff_NotFound(t *testing.T) {
	mock := &mockUserService{deleteErr: service.ErrStaffNotFound}
	h := NewUserHandler(mock, devErrors)

	w := serve("DELETE", "/auth/user/:id", "/auth/user/abc", nil, "", true, h.DeleteStaff)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Msg != "User not found" {
		t.Errorf("unexpected msg %q", resp.Msg)
	}
}

func TestUserHandler_ListStaff(t *testing.T) {
	mock := &mockUserService{listResult: []dto.UserResponse{{ID: "a"}, {ID: "b"}}}
	h := NewUserHandler(mock, devErrors)

	w := serve("GET", "/auth/users", "/auth/users", nil, "", true, h.ListStaff)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if list, _ := resp.Data.([]interface{}); len(list) != 2 {
		t.Errorf("expected 2 users, got %v", resp.Data)
	}
}

// ═══════════════════════════════════════════════════════════
// StudentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_List_PassesFilters(t *testing.T) {
	mock := &mockStudentService{listResult: []model.Student{}}
	h := NewStudentHandler(mock, devErrors)

	w := serve("GET", "/students/all", "/students/all?search=ali&status=RECOVERY&batch=B1", nil, "", true, h.List)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastListReq.Search != "ali" || mock.lastListReq.Status != "RECOVERY" || mock.lastListReq.Batch != "B1" {
		t.Errorf("filters not bound: %+v", mock.lastListReq)
	}
	if resp := parseResponse(w); resp.Data == nil {
		t.Error("empty list should serialize as [] not be omitted")
	}
}

func TestStudentHandler_Get_NotFound(t *testing.T) {
	mock := &mockStudentService{getErr: service.ErrStudentNotFound}
	h := NewStudentHandler(mock, devErrors)

	w := serve("GET", "/students/:id", "/students/missing", nil, "", true, h.Get)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != codeNotFound || resp.Msg != "Student not found" || resp.Success {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestStudentHandler_Create_Validation(t *testing.T) {
	mock := &mockStudentService{createErr: apperrors.Validation("name is required")}
	h := NewStudentHandler(mock, devErrors)

	w := serve("POST", "/students/add", "/students/add", jsonBody(map[string]string{"cnic": "1"}), "application/json", true, h.Create)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Msg != "name is required" {
		t.Errorf("unexpected msg %q", resp.Msg)
	}
}

func TestStudentHandler_BulkAdd_Success(t *testing.T) {
	mock := &mockStudentService{bulkResult: &dto.BulkAddResponse{Success: true, Count: 2, Created: 2}}
	h := NewStudentHandler(mock, devErrors)

	body := `[{"name":"Ali","cnic":"123","batch":"B1","feeReceived":"5,000"},{"name":"Sana","cnic":"456","feeReceived":200}]`
	w := serve("POST", "/students/bulk-add", "/students/bulk-add", strings.NewReader(body), "application/json", true, h.BulkAdd)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if len(mock.bulkPayloads) != 2 || mock.bulkPayloads[0].FeeReceived != 5000 || mock.bulkPayloads[1].FeeReceived != 200 {
		t.Errorf("payloads not decoded: %+v", mock.bulkPayloads)
	}
}

func TestStudentHandler_BulkAdd_NotArray(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{}, devErrors)

	w := serve("POST", "/students/bulk-add", "/students/bulk-add", strings.NewReader(`{"name":"Ali"}`), "application/json", true, h.BulkAdd)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Msg != "Student data missing or invalid: array expected" {
		t.Errorf("unexpected msg %q", resp.Msg)
	}
}

func TestStudentHandler_BulkAdd_PartialFailure(t *testing.T) {
	mock := &mockStudentService{bulkErr: &service.BulkAddError{
		FailedIndex: 1,
		Items:       []dto.BulkAddItem{{Index: 0, Action: dto.BulkActionCreated}},
		Err:         apperrors.Conflict("Duplicate value entered for receiptId field, please choose another value"),
	}}
	h := NewStudentHandler(mock, devErrors)

	w := serve("POST", "/students/bulk-add", "/students/bulk-add", strings.NewReader(`[{},{}]`), "application/json", true, h.BulkAdd)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, _ := resp.Data.(map[string]interface{})
	if data["failedIndex"] != float64(1) || data["processed"] != float64(1) {
		t.Errorf("failure details missing: %v", resp.Data)
	}
}

func TestStudentHandler_Import(t *testing.T) {
	mock := &mockStudentService{
		importResult: []dto.StudentPayload{{Name: "Ali", CNIC: "1"}},
		bulkResult:   &dto.BulkAddResponse{Success: true, Count: 1, Created: 1},
	}
	h := NewStudentHandler(mock, devErrors)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "students.xlsx")
	part.Write([]byte("xlsx-bytes"))
	mw.Close()

	w := serve("POST", "/students/import", "/students/import", &body, mw.FormDataContentType(), true, h.Import)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(mock.bulkPayloads) != 1 || mock.bulkPayloads[0].Name != "Ali" {
		t.Errorf("parsed rows should be passed to BulkAdd: %+v", mock.bulkPayloads)
	}
}

func TestStudentHandler_Import_MissingFile(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{}, devErrors)

	w := serve("POST", "/students/import", "/students/import", strings.NewReader(""), "application/json", true, h.Import)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestStudentHandler_Delete(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{}, devErrors)

	w := serve("DELETE", "/students/delete/:id", "/students/delete/abc", nil, "", true, h.Delete)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ── 错误详情按环境输出 ──

func TestErrorHandler_InternalDetails(t *testing.T) {
	cause := apperrors.FromDB(errors.New("pq: relation does not exist"))
	mock := &mockStudentService{listErr: cause}

	dev := serve("GET", "/students/all", "/students/all", nil, "", true, NewStudentHandler(mock, devErrors).List)
	if dev.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", dev.Code)
	}
	devResp := parseResponse(dev)
	if devResp.Code != codeInternal || !strings.Contains(devResp.Details, "relation does not exist") {
		t.Errorf("non-production response should include details: %+v", devResp)
	}

	prod := serve("GET", "/students/all", "/students/all", nil, "", true, NewStudentHandler(mock, errorHandler{production: true}).List)
	prodResp := parseResponse(prod)
	if prodResp.Details != "" {
		t.Errorf("production response should not include details, got %q", prodResp.Details)
	}
	if prodResp.Msg != "Something went wrong, try again later" {
		t.Errorf("unexpected msg %q", prodResp.Msg)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler / ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_DailyReport_MissingParams(t *testing.T) {
	h := NewReportHandler(&mockReportService{}, devErrors)

	w := serve("GET", "/students/daily-report", "/students/daily-report?month=February", nil, "", true, h.DailyReport)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_DailyReport_InvalidMonth(t *testing.T) {
	mock := &mockReportService{dailyErr: apperrors.Validation("invalid month %q", "Febtober")}
	h := NewReportHandler(mock, devErrors)

	w := serve("GET", "/students/daily-report", "/students/daily-report?month=Febtober&year=2026", nil, "", true, h.DailyReport)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_Stats(t *testing.T) {
	mock := &mockReportService{statsResult: &dto.DashboardStats{TotalStudents: 3}}
	h := NewReportHandler(mock, devErrors)

	w := serve("GET", "/students/stats", "/students/stats", nil, "", true, h.DashboardStats)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data, _ := parseResponse(w).Data.(map[string]interface{})
	if data["totalStudents"] != float64(3) {
		t.Errorf("unexpected data %v", data)
	}
}

func TestExportHandler_ExportStudents(t *testing.T) {
	mock := &mockExportService{xlsx: []byte("PK-fake")}
	h := NewExportHandler(mock, devErrors)

	w := serve("GET", "/students/export", "/students/export?batch=B1", nil, "", true, h.ExportStudents)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "students_2026-02-14.xlsx") {
		t.Errorf("unexpected disposition %q", cd)
	}
	if w.Body.String() != "PK-fake" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestExportHandler_InstallmentCalendar(t *testing.T) {
	mock := &mockExportService{icsBody: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"}
	h := NewExportHandler(mock, devErrors)

	w := serve("GET", "/students/installments.ics", "/students/installments.ics", nil, "", true, h.InstallmentCalendar)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %q", ct)
	}
}
