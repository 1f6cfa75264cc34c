package respond_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vasanam/vasanam/internal/api/respond"
)

func TestNew_WritesSuccessBody(t *testing.T) {
	handler := respond.New()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		respond.OK(r, http.StatusOK, map[string]string{"status": "ok"})
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestNew_WritesStructuredError(t *testing.T) {
	handler := respond.New()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		respond.Error(r, respond.ErrNotFound.With("Movie not found"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}

	var resp struct {
		Error struct {
			Type    string `json:"type"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error.Type != "not_found" || resp.Error.Message != "Movie not found" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestNew_RecoversPanics(t *testing.T) {
	handler := respond.New()(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestNew_SetsHeaders(t *testing.T) {
	handler := respond.New()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		respond.Header(r, "RateLimit-Limit", "30")
		respond.OK(r, http.StatusOK, map[string]string{"status": "ok"})
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	if got := rr.Header().Get("RateLimit-Limit"); got != "30" {
		t.Errorf("RateLimit-Limit = %q, want 30", got)
	}
}

func TestHelpers_NoOpWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest("GET", "/", http.NoBody)

	if respond.HasState(r.Context()) {
		t.Fatal("HasState() = true without middleware")
	}

	// Must not panic.
	respond.OK(r, http.StatusOK, nil)
	respond.Error(r, respond.ErrInternal)
	respond.Header(r, "X-Test", "1")
}
