package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoggingMiddlewareForwardsFlush(t *testing.T) {
	// The wrapped writer must still satisfy http.Flusher for the stream
	// handler.
	var flushable bool
	handler := LoggingMiddleware(testLogger(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, flushable = w.(http.Flusher)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))

	if !flushable {
		t.Error("Expected response writer to implement http.Flusher")
	}
}

// countingRecorder tracks recorder callbacks.
type countingRecorder struct {
	started, finished, recorded int
	lastStatus                  int
}

func (c *countingRecorder) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	c.recorded++
	c.lastStatus = statusCode
}
func (c *countingRecorder) RequestStarted()  { c.started++ }
func (c *countingRecorder) RequestFinished() { c.finished++ }

func TestLoggingMiddlewareRecordsMetrics(t *testing.T) {
	rec := &countingRecorder{}
	handler := LoggingMiddleware(testLogger(), rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.started != 1 || rec.finished != 1 || rec.recorded != 1 {
		t.Errorf("Expected one callback each, got started=%d finished=%d recorded=%d",
			rec.started, rec.finished, rec.recorded)
	}
	if rec.lastStatus != http.StatusNotFound {
		t.Errorf("Expected recorded status 404, got %d", rec.lastStatus)
	}
}

func TestLoggingMiddlewareNilRecorder(t *testing.T) {
	handler := LoggingMiddleware(testLogger(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with nil recorder, got %d", w.Code)
	}
}

func TestResponseWriterDefaultsTo200(t *testing.T) {
	rec := &countingRecorder{}
	handler := LoggingMiddleware(testLogger(), rec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit status"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.lastStatus != http.StatusOK {
		t.Errorf("Expected implicit 200 recorded, got %d", rec.lastStatus)
	}
}
