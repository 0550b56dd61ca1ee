package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"engined/pkg/types"
)

type fakeService struct {
	ready  bool
	models []types.Artifact
	status types.StatusResponse
}

func (s *fakeService) ListModels() []types.Artifact { return s.models }
func (s *fakeService) Status() types.StatusResponse { return s.status }
func (s *fakeService) Ready() bool                  { return s.ready }

func TestHealthzNotReady(t *testing.T) {
	mux := NewMux(&fakeService{ready: false})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", rec.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ready"] {
		t.Fatalf("ready must be false")
	}
}

func TestHealthzReady(t *testing.T) {
	mux := NewMux(&fakeService{ready: true})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestModelsEmptyListIsNotNull(t *testing.T) {
	mux := NewMux(&fakeService{ready: true})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/models", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp types.ModelsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Models == nil {
		t.Fatalf("models must be [] not null")
	}
}

func TestModelsListing(t *testing.T) {
	svc := &fakeService{ready: true, models: []types.Artifact{
		{ID: "a.gguf", Name: "a.gguf", Format: "gguf", SizeMB: 42},
	}}
	mux := NewMux(svc)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/models", nil))
	var resp types.ModelsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Models) != 1 || resp.Models[0].ID != "a.gguf" {
		t.Fatalf("models: %+v", resp.Models)
	}
}

func TestStatusEndpoint(t *testing.T) {
	svc := &fakeService{ready: true, status: types.StatusResponse{
		State:      "ready",
		ModelID:    "org/model",
		Scheduler:  "default(max_num_seqs=32)",
		MaxNumSeqs: 32,
	}}
	mux := NewMux(svc)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp types.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.State != "ready" || resp.ModelID != "org/model" || resp.MaxNumSeqs != 32 {
		t.Fatalf("response: %+v", resp)
	}
}

func TestSecurityHeader(t *testing.T) {
	mux := NewMux(&fakeService{ready: true})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("nosniff header: %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux := NewMux(&fakeService{ready: true})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
}
