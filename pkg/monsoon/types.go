package monsoon

import (
	"fmt"
	"time"
)

// Severity ranks an alert. The wire form matches the values consumed by
// downstream dashboards.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityInfo     Severity = "INFO"
)

// Stream health statuses reported by scans.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusOffline  = "offline"
)

// onsetDateLayout is the wire format for onset dates.
const onsetDateLayout = "2006-01-02"

// RegionalRainfall is the seasonal total for one homogeneous rainfall
// region.
type RegionalRainfall struct {
	Region     string  `json:"region"`
	RainfallMM float64 `json:"rainfall_mm"`
}

// Metrics is the full seasonal data packet for one year.
type Metrics struct {
	Year                int                `json:"year"`
	OnsetDate           string             `json:"onset_date"`
	NormalOnsetDate     string             `json:"normal_onset_date"`
	AllIndiaRainfallMM  float64            `json:"all_india_rainfall_mm"`
	LongPeriodAverageMM float64            `json:"lpa_mm,omitempty"`
	DeviationPercent    float64            `json:"deviation_percent"`
	Regional            []RegionalRainfall `json:"regional_data,omitempty"`
}

// OnsetDelayDays returns how many days late the monsoon onset was relative
// to the climatological normal. Positive means late, negative means early.
// Unparsable dates yield zero delay.
func (m *Metrics) OnsetDelayDays() int {
	onset, err := time.Parse(onsetDateLayout, m.OnsetDate)
	if err != nil {
		return 0
	}
	normal, err := time.Parse(onsetDateLayout, m.NormalOnsetDate)
	if err != nil {
		return 0
	}
	return int(onset.Sub(normal).Hours() / 24)
}

// RegionRainfall returns the seasonal total for a named region, or the
// all-India total for "All India". Unknown regions return zero.
func (m *Metrics) RegionRainfall(region string) float64 {
	if region == "All India" {
		return m.AllIndiaRainfallMM
	}
	for _, r := range m.Regional {
		if r.Region == region {
			return r.RainfallMM
		}
	}
	return 0
}

// Alert is one active hazard alert. IDs are deterministic per rule and
// year so a re-scan of the same season produces the same alert identity.
type Alert struct {
	ID        string         `json:"id"`
	StreamIDs []string       `json:"stream_ids"`
	Severity  Severity       `json:"severity"`
	Message   string         `json:"message"`
	CreatedAt time.Time      `json:"created_at"`
	Context   map[string]any `json:"context,omitempty"`
}

// ScanResult is the outcome of one monitor scan.
type ScanResult struct {
	Status  string   `json:"status"`
	Metrics *Metrics `json:"metrics,omitempty"`
	Alerts  []Alert  `json:"alerts"`
}

func deficitAlertID(year int) string {
	return fmt.Sprintf("alert_monsoon_deficit_%d", year)
}

func onsetDelayAlertID(year int) string {
	return fmt.Sprintf("alert_onset_delay_%d", year)
}
