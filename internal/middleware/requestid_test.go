package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var gotID string
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(gotID); err != nil {
		t.Fatalf("request id %q is not a UUID: %v", gotID, err)
	}
	if got := w.Header().Get(RequestIDHeader); got != gotID {
		t.Errorf("response header %s = %q, want %q", RequestIDHeader, got, gotID)
	}
}

func TestRequestIDMiddleware_PropagatesValidIncomingID(t *testing.T) {
	incoming := "6f1c2d9e-8a1b-4c3d-9e8f-0a1b2c3d4e5f"

	var gotID string
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotID != incoming {
		t.Errorf("request id = %q, want %q", gotID, incoming)
	}
}

// TestRequestIDMiddleware_ReplacesInvalidIncomingID はUUIDでない受信IDを引き継がないことを検証する。
func TestRequestIDMiddleware_ReplacesInvalidIncomingID(t *testing.T) {
	var gotID string
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>alert(1)</script>")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if _, err := uuid.Parse(gotID); err != nil {
		t.Errorf("request id %q should be a freshly generated UUID", gotID)
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	if got := RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty", got)
	}
}
