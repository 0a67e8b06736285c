package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTimeoutMiddleware(t *testing.T) {
	t.Run("fast handler passes through", func(t *testing.T) {
		handler := TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if w.Code != http.StatusCreated {
			t.Errorf("Expected 201, got %d", w.Code)
		}
	})

	t.Run("slow handler gets 504 envelope", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		handler := TimeoutMiddleware(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-release:
			}
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

		if w.Code != http.StatusGatewayTimeout {
			t.Fatalf("Expected 504, got %d", w.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Response is not JSON: %v", err)
		}
		if body["status"] != "error" {
			t.Errorf("Expected status error, got %q", body["status"])
		}
	})

	t.Run("late handler writes are dropped after 504", func(t *testing.T) {
		wrote := make(chan error, 1)
		handler := TimeoutMiddleware(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			_, err := w.Write([]byte(`{"status":"ok"}`))
			wrote <- err
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

		if err := <-wrote; err != http.ErrHandlerTimeout {
			t.Errorf("Expected ErrHandlerTimeout for late write, got %v", err)
		}
		if w.Code != http.StatusGatewayTimeout {
			t.Fatalf("Expected 504, got %d", w.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Body corrupted by late write: %v", err)
		}
		if body["status"] != "error" {
			t.Errorf("Expected only the timeout envelope, got %q", w.Body.String())
		}
	})

	t.Run("handler response already sent wins over the deadline", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		handler := TimeoutMiddleware(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("partial"))
			close(started)
			<-release
		}))

		w := httptest.NewRecorder()
		go func() {
			<-started
			time.Sleep(40 * time.Millisecond)
			close(release)
		}()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/late", nil))

		if w.Code != http.StatusOK {
			t.Errorf("Expected handler's 200 preserved, got %d", w.Code)
		}
		if w.Body.String() != "partial" {
			t.Errorf("Expected no envelope appended, got %q", w.Body.String())
		}
	})

	t.Run("handler context carries the deadline", func(t *testing.T) {
		var hasDeadline bool
		handler := TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, hasDeadline = r.Context().Deadline()
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if !hasDeadline {
			t.Error("Expected deadline on handler context")
		}
	})
}

