package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"indra/pkg/oracle"
)

// maxSimulateBodyBytes bounds the analysis request body.
const maxSimulateBodyBytes = 64 * 1024

// simulateRequest is the analysis request body. Investment is in rupees.
type simulateRequest struct {
	UserInput  string  `json:"user_input"`
	Investment float64 `json:"investment"`
}

// SimulateHandler streams intervention analyses as newline-delimited JSON.
type SimulateHandler struct {
	pipeline *oracle.Pipeline
	logger   *slog.Logger
}

// NewSimulateHandler creates the analysis stream handler.
func NewSimulateHandler(pipeline *oracle.Pipeline, logger *slog.Logger) *SimulateHandler {
	return &SimulateHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// ServeHTTP validates the request, then runs the pipeline and writes each
// event as one JSON line, flushing after every line. Validation failures
// answer 400 before a single stream byte is written; once the stream has
// started, failures arrive as terminal error events on the stream itself.
func (h *SimulateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body simulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSimulateBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := oracle.Request{
		UserInput:     body.UserInput,
		InvestmentINR: body.Investment,
	}
	if err := oracle.ValidateRequest(req); err != nil {
		var invalid *oracle.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := json.NewEncoder(w)
	for event := range h.pipeline.Run(r.Context(), req) {
		if err := enc.Encode(event); err != nil {
			// Client went away; the pipeline notices via the request
			// context and stops emitting.
			h.logger.DebugContext(r.Context(), "stream write failed", "error", err)
			return
		}
		flusher.Flush()
	}
}
