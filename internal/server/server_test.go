package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookscout/internal/config"
	"bookscout/internal/discovery"
	"bookscout/internal/services"
)

type fakePipeline struct {
	result discovery.SearchResult
	err    error
	panics bool
}

func (f *fakePipeline) Search(ctx context.Context, rawQuery, userID string) (discovery.SearchResult, error) {
	if f.panics {
		panic("unexpected state")
	}
	return f.result, f.err
}

type fakeHealth struct{ err error }

func (f *fakeHealth) HealthCheck(ctx context.Context) error { return f.err }

func newTestServer(t *testing.T, pipeline Pipeline, development bool, health ...HealthChecker) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Development = development
	srv, err := New(&cfg, pipeline, nil, health...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func postSearch(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSearchSuccess(t *testing.T) {
	pipeline := &fakePipeline{result: discovery.SearchResult{Success: true, Query: "cozy mystery"}}
	srv := newTestServer(t, pipeline, false)

	rec := postSearch(t, srv, `{"query":"cozy mystery","userId":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload discovery.SearchResult
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.Query != "cozy mystery" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestSearchValidationFailure(t *testing.T) {
	pipeline := &fakePipeline{err: services.Wrap(services.ErrValidation, "query", "normalize", "query must be at least 3 characters", nil)}
	srv := newTestServer(t, pipeline, false)

	rec := postSearch(t, srv, `{"query":"ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "query must be at least 3 characters" {
		t.Errorf("error = %q", payload["error"])
	}
}

func TestSearchInvalidBody(t *testing.T) {
	srv := newTestServer(t, &fakePipeline{}, false)

	rec := postSearch(t, srv, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakePipeline{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestSearchInternalErrorHidesDetail(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("database exploded")}
	srv := newTestServer(t, pipeline, false)

	rec := postSearch(t, srv, `{"query":"cozy mystery"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["error"] != "internal server error" {
		t.Errorf("error = %q", payload["error"])
	}
	if _, leaked := payload["message"]; leaked {
		t.Error("detail must be suppressed outside development mode")
	}
}

func TestSearchInternalErrorShowsDetailInDevelopment(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("database exploded")}
	srv := newTestServer(t, pipeline, true)

	rec := postSearch(t, srv, `{"query":"cozy mystery"}`)
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(payload["message"], "database exploded") {
		t.Errorf("message = %q, want detail in development mode", payload["message"])
	}
}

func TestSearchPanicRecovered(t *testing.T) {
	srv := newTestServer(t, &fakePipeline{panics: true}, false)

	rec := postSearch(t, srv, `{"query":"cozy mystery"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 after recovered panic", rec.Code)
	}
}

func TestHealthOK(t *testing.T) {
	srv := newTestServer(t, &fakePipeline{}, false, &fakeHealth{})

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHealthDegraded(t *testing.T) {
	srv := newTestServer(t, &fakePipeline{}, false, &fakeHealth{err: errors.New("llm unreachable")})

	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
