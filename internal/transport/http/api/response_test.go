package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return env
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]int{"count": 3}, "req-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	env := decode(t, rec)
	if !env.Success || env.Error != nil || env.RequestID != "req-1" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestFailEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusConflict, "duplicate_email", "email already in use", "req-2")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Success || env.Error == nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Error.Code != "duplicate_email" || env.Error.Message != "email already in use" {
		t.Fatalf("unexpected error: %+v", env.Error)
	}
}

// The client renders error.message in notices, so it must never be blank.
func TestFailDefaultsMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusServiceUnavailable, "upstream_down", "", "req-3")

	env := decode(t, rec)
	if env.Error == nil || env.Error.Message == "" {
		t.Fatalf("expected a default message, got %+v", env.Error)
	}
}
