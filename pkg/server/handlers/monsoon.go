package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"indra/pkg/monsoon"
)

// ScanRecorder receives scan outcomes for the metrics gauges.
type ScanRecorder interface {
	RecordMonsoonScan(status string, deviationPercent float64, onsetDelayDays, activeAlerts int)
}

// MonsoonHandler serves the hazard monitor endpoints.
type MonsoonHandler struct {
	monitor  *monsoon.Monitor
	archive  *monsoon.Archive
	recorder ScanRecorder
	logger   *slog.Logger
}

// NewMonsoonHandler creates the monsoon endpoint handler. archive and
// recorder may be nil; a nil archive turns the historical endpoint into a
// 404 for every year.
func NewMonsoonHandler(monitor *monsoon.Monitor, archive *monsoon.Archive, recorder ScanRecorder, logger *slog.Logger) *MonsoonHandler {
	return &MonsoonHandler{
		monitor:  monitor,
		archive:  archive,
		recorder: recorder,
		logger:   logger,
	}
}

// currentResponse is the wire shape of the current status endpoint.
type currentResponse struct {
	Status    string           `json:"status"`
	Timestamp int64            `json:"timestamp"`
	Metrics   currentMetrics   `json:"metrics"`
	Metadata  *monsoon.Metrics `json:"metadata"`
}

type currentMetrics struct {
	DeviationPercent float64 `json:"deviation_percent"`
	OnsetDelayDays   int     `json:"onset_delay_days"`
	RainfallTotal    float64 `json:"rainfall_total"`
}

// Current serves GET .../current. An optional year query parameter also
// switches the focus year before reading; an unknown focus year is served
// with the default year's packet, so 404 means no data at all.
func (h *MonsoonHandler) Current(w http.ResponseWriter, r *http.Request) {
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		h.monitor.SetFocusYear(year)
	}

	metrics, err := h.monitor.Current(r.Context())
	if err != nil {
		if errors.Is(err, monsoon.ErrYearUnavailable) {
			writeError(w, http.StatusNotFound, "Monsoon data not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "monsoon current lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "monsoon data lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, currentResponse{
		Status:    monsoon.StatusHealthy,
		Timestamp: time.Now().Unix(),
		Metrics: currentMetrics{
			DeviationPercent: metrics.DeviationPercent,
			OnsetDelayDays:   metrics.OnsetDelayDays(),
			RainfallTotal:    metrics.AllIndiaRainfallMM,
		},
		Metadata: metrics,
	})
}

// setYearRequest is the focus-year control body.
type setYearRequest struct {
	Year int `json:"year"`
}

// SetYear serves POST .../simulation/set_year.
func (h *MonsoonHandler) SetYear(w http.ResponseWriter, r *http.Request) {
	var body setYearRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Year <= 0 {
		writeError(w, http.StatusBadRequest, "year must be a positive integer")
		return
	}

	h.monitor.SetFocusYear(body.Year)

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Simulation context switched to " + strconv.Itoa(body.Year),
	})
}

// Historical serves GET .../historical/{year} from the archive.
func (h *MonsoonHandler) Historical(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	if h.archive == nil {
		writeError(w, http.StatusNotFound, "No data for year "+strconv.Itoa(year))
		return
	}

	metrics, err := h.archive.Year(r.Context(), year)
	if err != nil {
		if errors.Is(err, monsoon.ErrYearUnavailable) {
			writeError(w, http.StatusNotFound, "No data for year "+strconv.Itoa(year))
			return
		}
		h.logger.ErrorContext(r.Context(), "monsoon archive lookup failed", "year", year, "error", err)
		writeError(w, http.StatusInternalServerError, "archive lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// Scan serves GET .../scan, running a full monitor scan on demand.
func (h *MonsoonHandler) Scan(w http.ResponseWriter, r *http.Request) {
	result, err := h.monitor.Scan(r.Context())
	if h.recorder != nil {
		var deviation float64
		var delay int
		if result.Metrics != nil {
			deviation = result.Metrics.DeviationPercent
			delay = result.Metrics.OnsetDelayDays()
		}
		h.recorder.RecordMonsoonScan(result.Status, deviation, delay, len(result.Alerts))
	}
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
