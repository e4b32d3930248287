package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ROYBRUNO81/Course-Planner/internal/dto"
	"github.com/ROYBRUNO81/Course-Planner/internal/service"
	"github.com/ROYBRUNO81/Course-Planner/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.StudentResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.StudentResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}

// ── Mock CatalogService ──

type mockCatalogService struct {
	addResult    *dto.CourseResponse
	addErr       error
	editResult   *dto.CourseResponse
	editErr      error
	getResult    *dto.CourseResponse
	getErr       error
	listResult   []dto.CourseResponse
	listErr      error
	importResult *dto.ImportCoursesResponse
	importErr    error
}

func (m *mockCatalogService) AddCourse(_ context.Context, _ *dto.AddCourseRequest) (*dto.CourseResponse, error) {
	return m.addResult, m.addErr
}
func (m *mockCatalogService) EditCourse(_ context.Context, _ string, _ *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	return m.editResult, m.editErr
}
func (m *mockCatalogService) GetCourse(_ context.Context, _ string) (*dto.CourseResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockCatalogService) ListCourses(_ context.Context) ([]dto.CourseResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCatalogService) ImportCourses(_ context.Context, _ *dto.ImportCoursesRequest) (*dto.ImportCoursesResponse, error) {
	return m.importResult, m.importErr
}

// ── Mock PlanService ──

type mockPlanService struct {
	generateResult *dto.PlanResponse
	generateErr    error
	getResult      *dto.PlanResponse
	getErr         error
	clearErr       error
}

func (m *mockPlanService) GeneratePlan(_ context.Context, _ string, _ *dto.GeneratePlanRequest) (*dto.PlanResponse, error) {
	return m.generateResult, m.generateErr
}
func (m *mockPlanService) GetPlan(_ context.Context, _ string) (*dto.PlanResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockPlanService) ClearPlanFrom(_ context.Context, _ string, _ int) error {
	return m.clearErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportPlan(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// injectAuth 模拟 JWT 中间件注入的上下文
func injectAuth(studentID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("student_id", studentID)
		c.Set("role", role)
		c.Next()
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    7200,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		SID:      "20260001",
		Password: "correct-horse",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		SID:      "20260001",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CourseHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCourseHandler_Create_Conflict(t *testing.T) {
	h := NewCourseHandler(&mockCatalogService{addErr: service.ErrCourseExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/courses", jsonBody(dto.AddCourseRequest{
		Code:  "CIS 1200",
		Title: "PL&T I",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/courses", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestCourseHandler_Update_NotFound(t *testing.T) {
	h := NewCourseHandler(&mockCatalogService{editErr: service.ErrCourseNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/courses/CIS%209999", jsonBody(dto.UpdateCourseRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PATCH("/courses/:code", h.Update)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PlanHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPlanHandler_Generate_Success(t *testing.T) {
	h := NewPlanHandler(&mockPlanService{
		generateResult: &dto.PlanResponse{
			Semesters: []dto.PlanSemester{
				{Index: 0, Term: "Fall", Courses: []string{"CIS 1200"}, AverageDifficulty: 3.0},
			},
			AverageDifficulty: 3.0,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/plan/generate", jsonBody(dto.GeneratePlanRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/plan/generate", injectAuth("stu-1", "student"), h.Generate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestPlanHandler_Generate_Unauthenticated(t *testing.T) {
	h := NewPlanHandler(&mockPlanService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/plan/generate", jsonBody(dto.GeneratePlanRequest{}))
	req.Header.Set("Content-Type", "application/json")

	// 未经过 JWT 中间件注入
	r := gin.New()
	r.POST("/plan/generate", h.Generate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestPlanHandler_Generate_NoMajor(t *testing.T) {
	h := NewPlanHandler(&mockPlanService{generateErr: service.ErrStudentNoMajor})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/plan/generate", jsonBody(dto.GeneratePlanRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/plan/generate", injectAuth("stu-1", "student"), h.Generate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportPlan_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "course_plan_20260001.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/plan", nil)

	r := gin.New()
	r.GET("/export/plan", injectAuth("stu-1", "student"), h.ExportPlan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ExportPlan_Empty(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoPlan})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/plan", nil)

	r := gin.New()
	r.GET("/export/plan", injectAuth("stu-1", "student"), h.ExportPlan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
