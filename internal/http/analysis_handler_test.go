package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skin-analysis/internal/domain"
	"skin-analysis/internal/service"
)

type mockRunner struct {
	runResult service.RunResult
	runErr    error
	lastReq   service.RunRequest
	record    domain.AnalysisRecord
	found     bool
	getErr    error
}

func (m *mockRunner) Run(_ context.Context, req service.RunRequest) (service.RunResult, error) {
	m.lastReq = req
	return m.runResult, m.runErr
}

func (m *mockRunner) GetResult(_ context.Context, _ string) (domain.AnalysisRecord, bool, error) {
	return m.record, m.found, m.getErr
}

func newTestEngine(runner *mockRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalysisHandler(zap.NewNop(), runner)
	r := gin.New()
	r.POST("/analysis", h.RunAnalysis)
	r.GET("/analysis/:photo_session_id", h.GetAnalysisResult)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRunAnalysisSuccess(t *testing.T) {
	runner := &mockRunner{runResult: service.RunResult{DiagnosticID: "diag-1", Duration: 1500000000}}
	r := newTestEngine(runner)

	w := doJSON(t, r, http.MethodPost, "/analysis", gin.H{
		"photo_session_id": "ps-1",
		"doctor_id":        "dr-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success      bool   `json:"success"`
		DiagnosticID string `json:"diagnostic_id"`
		DurationMS   int64  `json:"duration_ms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.DiagnosticID != "diag-1" || resp.DurationMS != 1500 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if runner.lastReq.PhotoSessionID != "ps-1" || runner.lastReq.DoctorID != "dr-1" {
		t.Errorf("unexpected run request: %+v", runner.lastReq)
	}
}

func TestRunAnalysisMissingFields(t *testing.T) {
	r := newTestEngine(&mockRunner{})

	w := doJSON(t, r, http.MethodPost, "/analysis", gin.H{"doctor_id": "dr-1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRunAnalysisRateLimited(t *testing.T) {
	runner := &mockRunner{runErr: &service.RateLimitError{CurrentCount: 1000, Limit: 1000}}
	r := newTestEngine(runner)

	w := doJSON(t, r, http.MethodPost, "/analysis", gin.H{
		"photo_session_id": "ps-1",
		"doctor_id":        "dr-1",
	})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}

	var resp struct {
		Error        string `json:"error"`
		CurrentCount int    `json:"current_count"`
		Limit        int    `json:"limit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CurrentCount != 1000 || resp.Limit != 1000 || resp.Error == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRunAnalysisNotFound(t *testing.T) {
	runner := &mockRunner{runErr: service.ErrPhotoSessionNotFound}
	r := newTestEngine(runner)

	w := doJSON(t, r, http.MethodPost, "/analysis", gin.H{
		"photo_session_id": "missing",
		"doctor_id":        "dr-1",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetAnalysisResultNotFound(t *testing.T) {
	r := newTestEngine(&mockRunner{found: false})

	w := doJSON(t, r, http.MethodGet, "/analysis/ps-unknown", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "not_found" {
		t.Errorf("status = %q, want not_found", resp.Status)
	}
}

func TestGetAnalysisResultFailed(t *testing.T) {
	runner := &mockRunner{
		found: true,
		record: domain.AnalysisRecord{
			PhotoSessionID: "ps-1",
			Status:         domain.AnalysisStatusFailed,
			ErrorMessage:   "diagnostic api error: status=502",
		},
	}
	r := newTestEngine(runner)

	w := doJSON(t, r, http.MethodGet, "/analysis/ps-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "failed" || resp.ErrorMessage == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGetAnalysisResultCompleted(t *testing.T) {
	runner := &mockRunner{
		found: true,
		record: domain.AnalysisRecord{
			PhotoSessionID: "ps-1",
			Status:         domain.AnalysisStatusCompleted,
			DiagnosticID:   "diag-1",
			Result: &domain.ParsedAnalysisResult{
				CategoryResults: []domain.CategoryResult{
					{CategoryID: "radiance", VisibilityLevel: 8},
				},
			},
		},
	}
	r := newTestEngine(runner)

	w := doJSON(t, r, http.MethodGet, "/analysis/ps-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Status       string                       `json:"status"`
		DiagnosticID string                       `json:"diagnostic_id"`
		Result       *domain.ParsedAnalysisResult `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "completed" || resp.DiagnosticID != "diag-1" || resp.Result == nil {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
	if resp.Result.CategoryScore("radiance") != 8 {
		t.Errorf("radiance = %d, want 8", resp.Result.CategoryScore("radiance"))
	}
}
