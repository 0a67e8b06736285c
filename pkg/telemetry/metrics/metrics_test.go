package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testCollector() *Collector {
	return NewCollector(Config{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "metrics",
	}, prometheus.NewRegistry())
}

func TestNewCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Config{Enabled: true}, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if collector.config.Namespace != "indra" || collector.config.Subsystem != "api" {
		t.Errorf("Expected default namespace and subsystem, got %s/%s",
			collector.config.Namespace, collector.config.Subsystem)
	}
}

func TestNewCollectorNilRegistry(t *testing.T) {
	collector := NewCollector(Config{Enabled: true}, nil)
	if collector.Registry() == nil {
		t.Fatal("Expected a fresh registry when none supplied")
	}
}

func TestRecordRequest(t *testing.T) {
	collector := testCollector()

	collector.RecordRequest("GET", "/api/monsoon/current", 200, 25*time.Millisecond)
	collector.RecordRequest("GET", "/api/monsoon/current", 200, 40*time.Millisecond)
	collector.RecordRequest("POST", "/api/oracle/simulate", 400, 5*time.Millisecond)

	count := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("GET", "/api/monsoon/current", "200"))
	if count != 2 {
		t.Errorf("Expected 2 GET requests recorded, got %f", count)
	}
	count = testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("POST", "/api/oracle/simulate", "400"))
	if count != 1 {
		t.Errorf("Expected 1 POST request recorded, got %f", count)
	}
}

func TestRequestsInFlight(t *testing.T) {
	collector := testCollector()

	collector.RequestStarted()
	collector.RequestStarted()
	if got := testutil.ToFloat64(collector.requestMetrics.requestsInFlight); got != 2 {
		t.Errorf("Expected 2 in flight, got %f", got)
	}

	collector.RequestFinished()
	if got := testutil.ToFloat64(collector.requestMetrics.requestsInFlight); got != 1 {
		t.Errorf("Expected 1 in flight, got %f", got)
	}
}

func TestRecordAnalysis(t *testing.T) {
	collector := testCollector()

	t.Run("completed analysis moves gauges", func(t *testing.T) {
		collector.RecordAnalysis("monsoon_cloud_seeding", "ok", 0.59, 1050, 2*time.Second)

		count := testutil.ToFloat64(collector.analysisMetrics.analysesTotal.WithLabelValues("monsoon_cloud_seeding", "ok"))
		if count != 1 {
			t.Errorf("Expected 1 analysis counted, got %f", count)
		}
		score := testutil.ToFloat64(collector.analysisMetrics.effectiveness.WithLabelValues("monsoon_cloud_seeding"))
		if score != 0.59 {
			t.Errorf("Expected effectiveness gauge 0.59, got %f", score)
		}
	})

	t.Run("failed analysis counts but leaves gauges", func(t *testing.T) {
		collector.RecordAnalysis("monsoon_cloud_seeding", "error", 0.0, 0, 100*time.Millisecond)

		count := testutil.ToFloat64(collector.analysisMetrics.analysesTotal.WithLabelValues("monsoon_cloud_seeding", "error"))
		if count != 1 {
			t.Errorf("Expected 1 failed analysis counted, got %f", count)
		}
		score := testutil.ToFloat64(collector.analysisMetrics.effectiveness.WithLabelValues("monsoon_cloud_seeding"))
		if score != 0.59 {
			t.Errorf("Expected effectiveness gauge untouched at 0.59, got %f", score)
		}
	})

	t.Run("empty mechanism maps to unknown", func(t *testing.T) {
		collector.RecordAnalysis("", "error", 0.0, 0, time.Millisecond)

		count := testutil.ToFloat64(collector.analysisMetrics.analysesTotal.WithLabelValues("unknown", "error"))
		if count != 1 {
			t.Errorf("Expected unknown label used, got %f", count)
		}
	})
}

func TestRecordMonsoonScan(t *testing.T) {
	collector := testCollector()

	collector.RecordMonsoonScan("healthy", -20.0, 7, 1)

	if got := testutil.ToFloat64(collector.monsoonMetrics.deviationPercent); got != -20.0 {
		t.Errorf("Expected deviation gauge -20, got %f", got)
	}
	if got := testutil.ToFloat64(collector.monsoonMetrics.activeAlerts); got != 1 {
		t.Errorf("Expected 1 active alert, got %f", got)
	}

	// Degraded scan counts but must not zero the seasonal gauges.
	collector.RecordMonsoonScan("degraded", 0, 0, 0)

	count := testutil.ToFloat64(collector.monsoonMetrics.scansTotal.WithLabelValues("degraded"))
	if count != 1 {
		t.Errorf("Expected 1 degraded scan counted, got %f", count)
	}
	if got := testutil.ToFloat64(collector.monsoonMetrics.deviationPercent); got != -20.0 {
		t.Errorf("Expected deviation gauge to keep last healthy value, got %f", got)
	}
}

func TestDisabledCollectorRecordsNothing(t *testing.T) {
	collector := NewCollector(Config{Enabled: false}, prometheus.NewRegistry())

	collector.RecordRequest("GET", "/", 200, time.Millisecond)
	collector.RequestStarted()
	collector.RecordAnalysis("monsoon_cloud_seeding", "ok", 0.5, 10, time.Second)
	collector.RecordMonsoonScan("healthy", -5.0, 0, 0)

	if got := testutil.ToFloat64(collector.requestMetrics.requestsInFlight); got != 0 {
		t.Errorf("Expected no in-flight movement when disabled, got %f", got)
	}
	if got := testutil.ToFloat64(collector.monsoonMetrics.deviationPercent); got != 0 {
		t.Errorf("Expected deviation gauge untouched when disabled, got %f", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	collector := testCollector()
	collector.RecordRequest("GET", "/api/monsoon/current", 200, 10*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "test_metrics_requests_total") {
		t.Errorf("Expected exposition to contain request counter, got:\n%s", body)
	}
}
