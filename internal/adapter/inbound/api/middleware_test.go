package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(RequestIDKey).(string)
		w.WriteHeader(http.StatusNoContent)
	})

	mw := RequestIDMiddleware(discardLogger())(inner)
	req := httptest.NewRequest(http.MethodGet, "/api/TodoItems", nil)
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	if seen == "" {
		t.Fatal("request id missing from context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", seen, err)
	}
	if got := w.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("X-Request-ID header = %q, want %q", got, seen)
	}
}

func TestRequestIDMiddleware_PreservesCallerID(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mw := RequestIDMiddleware(discardLogger())(inner)
	req := httptest.NewRequest(http.MethodGet, "/api/TodoItems", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("X-Request-ID header = %q, want caller-supplied id echoed back", got)
	}
}

func TestRecoveryMiddleware_PanicBecomes500(t *testing.T) {
	t.Parallel()

	sink := &countingSink{}
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	mw := RecoveryMiddleware(sink, discardLogger())(inner)
	req := httptest.NewRequest(http.MethodGet, "/api/TodoItems", nil)
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var envelope errorResponse
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if envelope.Status != "error" || envelope.Message != msgInternalError {
		t.Errorf("envelope = %+v, want error/%q", envelope, msgInternalError)
	}
	if sink.n != 1 {
		t.Errorf("sink recorded %d lines, want 1", sink.n)
	}
}

func TestRecoveryMiddleware_PassThrough(t *testing.T) {
	t.Parallel()

	sink := &countingSink{}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(w, strings.NewReader("fine"))
	})

	mw := RecoveryMiddleware(sink, discardLogger())(inner)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "fine" {
		t.Errorf("response = %d %q, want 200 %q", w.Code, w.Body.String(), "fine")
	}
	if sink.n != 0 {
		t.Errorf("sink recorded %d lines, want 0", sink.n)
	}
}
