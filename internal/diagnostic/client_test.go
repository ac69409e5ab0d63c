package diagnostic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPClientAnalyze(t *testing.T) {
	var gotAuth string
	var gotBody analyzeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/diagnostics" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"diagnostic_id":"diag-1","scores":{"yellow":8}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-key", time.Second, nil)
	raw, err := client.Analyze(context.Background(), PhotoURLs{Frontal: "https://signed/frontal.jpg"}, "en")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !strings.Contains(string(raw), "diag-1") {
		t.Errorf("unexpected body: %s", raw)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody.PhotoURLs.Frontal != "https://signed/frontal.jpg" || gotBody.Locale != "en" {
		t.Errorf("unexpected payload: %+v", gotBody)
	}
}

func TestHTTPClientAnalyzeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exhausted", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "k", time.Second, nil)
	_, err := client.Analyze(context.Background(), PhotoURLs{Frontal: "u"}, "en")
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "status=502") {
		t.Errorf("error should carry status: %v", err)
	}
}
