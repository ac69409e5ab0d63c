package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"skin-analysis/internal/diagnostic"
	"skin-analysis/internal/domain"
	"skin-analysis/internal/scoring"
)

type mockPhotoSessionRepo struct {
	sessions map[string]domain.PhotoSession
}

func (m *mockPhotoSessionRepo) GetByID(_ context.Context, id string) (domain.PhotoSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return domain.PhotoSession{}, pgx.ErrNoRows
	}
	return session, nil
}

type mockAnalysisRepo struct {
	records       map[string]domain.AnalysisRecord
	pendingCalls  int
	saveResultErr error
}

func newMockAnalysisRepo() *mockAnalysisRepo {
	return &mockAnalysisRepo{records: make(map[string]domain.AnalysisRecord)}
}

func (m *mockAnalysisRepo) SavePending(_ context.Context, record domain.AnalysisRecord) error {
	m.pendingCalls++
	record.Status = domain.AnalysisStatusPending
	m.records[record.PhotoSessionID] = record
	return nil
}

func (m *mockAnalysisRepo) SaveResult(_ context.Context, photoSessionID, diagnosticID string, rawResponse []byte, result domain.ParsedAnalysisResult) error {
	if m.saveResultErr != nil {
		return m.saveResultErr
	}
	record := m.records[photoSessionID]
	record.Status = domain.AnalysisStatusCompleted
	record.DiagnosticID = diagnosticID
	record.RawResponse = rawResponse
	record.Result = &result
	m.records[photoSessionID] = record
	return nil
}

func (m *mockAnalysisRepo) SaveFailed(_ context.Context, photoSessionID, errorMessage string) error {
	record, ok := m.records[photoSessionID]
	if !ok {
		return errors.New("no record")
	}
	record.Status = domain.AnalysisStatusFailed
	record.ErrorMessage = errorMessage
	m.records[photoSessionID] = record
	return nil
}

func (m *mockAnalysisRepo) GetByPhotoSession(_ context.Context, photoSessionID string) (domain.AnalysisRecord, error) {
	record, ok := m.records[photoSessionID]
	if !ok {
		return domain.AnalysisRecord{}, pgx.ErrNoRows
	}
	return record, nil
}

type mockSigner struct {
	err   error
	calls []string
}

func (m *mockSigner) SignedURL(_ context.Context, storagePath string) (string, error) {
	m.calls = append(m.calls, storagePath)
	if m.err != nil {
		return "", m.err
	}
	return "https://signed.example.com/" + storagePath, nil
}

type mockLimiter struct {
	status     UsageStatus
	increments int
}

func (m *mockLimiter) Check(_ context.Context, _ string) (UsageStatus, error) {
	return m.status, nil
}

func (m *mockLimiter) Increment(_ context.Context, _ string) error {
	m.increments++
	return nil
}

type fixture struct {
	svc     *AnalysisService
	photos  *mockPhotoSessionRepo
	records *mockAnalysisRepo
	signer  *mockSigner
	client  *diagnostic.MockClient
	limiter *mockLimiter
}

func newFixture() *fixture {
	f := &fixture{
		photos: &mockPhotoSessionRepo{sessions: map[string]domain.PhotoSession{
			"ps-1": {
				ID:               "ps-1",
				PatientID:        "pat-1",
				FrontalPhotoPath: "photos/ps-1/frontal.jpg",
			},
		}},
		records: newMockAnalysisRepo(),
		signer:  &mockSigner{},
		client:  &diagnostic.MockClient{Response: []byte(`{"diagnostic_id":"diag-1","scores":{"yellow":8,"grey":2}}`)},
		limiter: &mockLimiter{status: UsageStatus{WithinLimit: true, CurrentCount: 10, Limit: 1000}},
	}
	f.svc = NewAnalysisService(f.photos, f.records, f.signer, f.client, f.limiter, "en", time.Minute, zap.NewNop())
	return f
}

func TestRunSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-1", DoctorID: "dr-1"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.DiagnosticID != "diag-1" {
		t.Errorf("diagnostic id = %q", result.DiagnosticID)
	}
	if f.limiter.increments != 1 {
		t.Errorf("usage incremented %d times, want 1", f.limiter.increments)
	}
	if f.client.LastPhotos.Frontal == "" {
		t.Error("frontal photo url not sent to diagnostic api")
	}

	record, ok, err := f.svc.GetResult(context.Background(), "ps-1")
	if err != nil || !ok {
		t.Fatalf("GetResult: ok=%v err=%v", ok, err)
	}
	if record.Status != domain.AnalysisStatusCompleted {
		t.Errorf("status = %s, want completed", record.Status)
	}
	if record.Result == nil {
		t.Fatal("expected parsed result attached")
	}
	if got := record.Result.CategoryScore(scoring.CategoryRadiance); got != 8 {
		t.Errorf("radiance = %d, want 8", got)
	}
}

func TestRunRateLimited(t *testing.T) {
	f := newFixture()
	f.limiter.status = UsageStatus{WithinLimit: false, CurrentCount: 1000, Limit: 1000}

	_, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-1", DoctorID: "dr-1"})

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rle.CurrentCount != 1000 || rle.Limit != 1000 {
		t.Errorf("unexpected counters: %+v", rle)
	}
	// Sin efectos colaterales: ni incremento ni registro pending.
	if f.limiter.increments != 0 {
		t.Errorf("usage incremented %d times, want 0", f.limiter.increments)
	}
	if f.records.pendingCalls != 0 {
		t.Errorf("pending record created %d times, want 0", f.records.pendingCalls)
	}
}

func TestRunPhotoSessionNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "missing", DoctorID: "dr-1"})
	if !errors.Is(err, ErrPhotoSessionNotFound) {
		t.Fatalf("expected ErrPhotoSessionNotFound, got %v", err)
	}
	if f.records.pendingCalls != 0 {
		t.Error("no pending record should exist for an unknown session")
	}
	// El comportamiento heredado consume cuota aunque la sesión no exista.
	if f.limiter.increments != 1 {
		t.Errorf("usage incremented %d times, want 1", f.limiter.increments)
	}
}

func TestRunFrontalPhotoMissing(t *testing.T) {
	f := newFixture()
	f.photos.sessions["ps-2"] = domain.PhotoSession{ID: "ps-2", PatientID: "pat-2"}

	_, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-2", DoctorID: "dr-1"})
	if !errors.Is(err, ErrFrontalPhotoMissing) {
		t.Fatalf("expected ErrFrontalPhotoMissing, got %v", err)
	}
	if f.records.pendingCalls != 0 {
		t.Error("no pending record should exist when frontal photo is missing")
	}
}

func TestRunDiagnosticAPIFailureTerminatesRecord(t *testing.T) {
	f := newFixture()
	f.client.Err = errors.New("diagnostic api error: status=502")

	_, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-1", DoctorID: "dr-1"})
	if err == nil {
		t.Fatal("expected error")
	}

	record, ok, _ := f.svc.GetResult(context.Background(), "ps-1")
	if !ok {
		t.Fatal("expected a persisted record")
	}
	if record.Status != domain.AnalysisStatusFailed {
		t.Fatalf("status = %s, want failed", record.Status)
	}
	if record.ErrorMessage == "" {
		t.Error("failed record must carry a message")
	}
	// El mensaje del proveedor se conserva tal cual.
	if record.ErrorMessage != "diagnostic api error: status=502" {
		t.Errorf("error message = %q", record.ErrorMessage)
	}
}

func TestRunSignedURLFailureTerminatesRecord(t *testing.T) {
	f := newFixture()
	f.signer.err = errors.New("storage unreachable")

	_, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-1", DoctorID: "dr-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	record, _, _ := f.svc.GetResult(context.Background(), "ps-1")
	if record.Status != domain.AnalysisStatusFailed {
		t.Fatalf("status = %s, want failed", record.Status)
	}
	if f.client.Calls != 0 {
		t.Error("diagnostic api must not be called when signing fails")
	}
}

func TestRunUnparseableResponseTerminatesRecord(t *testing.T) {
	f := newFixture()
	f.client.Response = []byte("<html>gateway timeout</html>")

	_, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-1", DoctorID: "dr-1"})
	if err == nil {
		t.Fatal("expected error")
	}
	record, _, _ := f.svc.GetResult(context.Background(), "ps-1")
	if record.Status != domain.AnalysisStatusFailed {
		t.Fatalf("status = %s, want failed", record.Status)
	}
}

func TestRunResultPersistenceFailureIsFullFailure(t *testing.T) {
	f := newFixture()
	f.records.saveResultErr = errors.New("db write refused")

	_, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-1", DoctorID: "dr-1"})
	if err == nil {
		t.Fatal("expected error even though the external call succeeded")
	}
	record, _, _ := f.svc.GetResult(context.Background(), "ps-1")
	if record.Status != domain.AnalysisStatusFailed {
		t.Fatalf("status = %s, want failed", record.Status)
	}
}

func TestRunResolvesOptionalProfilePhotos(t *testing.T) {
	f := newFixture()
	f.photos.sessions["ps-1"] = domain.PhotoSession{
		ID:                    "ps-1",
		PatientID:             "pat-1",
		FrontalPhotoPath:      "photos/ps-1/frontal.jpg",
		LeftProfilePhotoPath:  "photos/ps-1/left.jpg",
		RightProfilePhotoPath: "photos/ps-1/right.jpg",
	}

	if _, err := f.svc.Run(context.Background(), RunRequest{PhotoSessionID: "ps-1", DoctorID: "dr-1"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.signer.calls) != 3 {
		t.Fatalf("signed %d urls, want 3", len(f.signer.calls))
	}
	if f.client.LastPhotos.LeftProfile == "" || f.client.LastPhotos.RightProfile == "" {
		t.Error("profile photo urls not forwarded")
	}
}

func TestGetResultNotFound(t *testing.T) {
	f := newFixture()
	_, ok, err := f.svc.GetResult(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if ok {
		t.Fatal("expected not found")
	}
}
