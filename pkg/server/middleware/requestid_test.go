package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"indra/pkg/telemetry/logging"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates ID when absent", func(t *testing.T) {
		var ctxID string
		handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxID = logging.GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if ctxID == "" {
			t.Error("Expected request ID on context")
		}
		if got := w.Header().Get(RequestIDHeader); got != ctxID {
			t.Errorf("Expected echoed header %q, got %q", ctxID, got)
		}
	})

	t.Run("keeps client-provided ID", func(t *testing.T) {
		var ctxID string
		handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxID = logging.GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "client-id-42")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if ctxID != "client-id-42" {
			t.Errorf("Expected client ID kept, got %q", ctxID)
		}
		if got := w.Header().Get(RequestIDHeader); got != "client-id-42" {
			t.Errorf("Expected client ID echoed, got %q", got)
		}
	})

	t.Run("IDs are unique per request", func(t *testing.T) {
		handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
			id := w.Header().Get(RequestIDHeader)
			if seen[id] {
				t.Fatalf("Duplicate request ID %q", id)
			}
			seen[id] = true
		}
	})
}
