package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// timeoutWriter serialises writes between the handler goroutine and the
// deadline path. Once the deadline response has gone out, handler writes
// are dropped with http.ErrHandlerTimeout.
type timeoutWriter struct {
	http.ResponseWriter

	mu       sync.Mutex
	timedOut bool
	wrote    bool
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return
	}
	tw.wrote = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	tw.wrote = true
	return tw.ResponseWriter.Write(b)
}

// writeTimeout emits the 504 envelope unless the handler already produced
// output, and cuts the handler off either way.
func (tw *timeoutWriter) writeTimeout() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.timedOut = true
	if tw.wrote {
		return
	}
	tw.ResponseWriter.Header().Set("Content-Type", "application/json")
	tw.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	_ = json.NewEncoder(tw.ResponseWriter).Encode(map[string]string{
		"status":  "error",
		"message": "Request timeout: the request took too long to complete",
	})
}

// TimeoutMiddleware enforces a per-request deadline. When the deadline
// passes before the handler finishes, the client receives a 504 in the
// API's error envelope and the handler's context is cancelled. Anything
// the handler writes after that is discarded.
//
// The server applies this only to non-streaming routes; the analysis
// stream carries its own pacing and ends on its own terms.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{ResponseWriter: w}

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return

			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					tw.writeTimeout()
				}
			}
		})
	}
}
