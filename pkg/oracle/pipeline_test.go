package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"indra/pkg/research"
	"indra/pkg/tracks"
)

// stubProvider returns canned papers or a fixed error.
type stubProvider struct {
	papers []research.Paper
	err    error

	mu      sync.Mutex
	queries []string
}

func (s *stubProvider) Search(ctx context.Context, query string, maxResults int) ([]research.Paper, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if len(s.papers) > maxResults {
		return s.papers[:maxResults], nil
	}
	return s.papers, nil
}

func (s *stubProvider) HealthCheck(ctx context.Context) error { return s.err }
func (s *stubProvider) Name() string                          { return "stub" }

func testBaseline() *tracks.Collection {
	return tracks.NewCollection(nil)
}

func newTestPipeline(provider research.Provider) *Pipeline {
	baseline := tracks.NewCollection([]tracks.Track{
		{SID: "A", Name: "ALPHA", Season: 2019, Coordinates: [][2]float64{{72, 15}, {73, 16}}, MaxIntensity: 100},
		{SID: "B", Name: "BETA", Season: 2020, Coordinates: [][2]float64{{80, 12}, {81, 13}}, MaxIntensity: 60},
	})
	return New(baseline, provider, Config{StageDelay: 0}, nil, nil)
}

func collectEvents(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("Timed out waiting for event stream to close")
		}
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
		field   string
	}{
		{"valid", Request{UserInput: "cloud seeding", InvestmentINR: 1e9}, false, ""},
		{"empty input", Request{UserInput: "", InvestmentINR: 1e9}, true, "user_input"},
		{"whitespace input", Request{UserInput: "   ", InvestmentINR: 1e9}, true, "user_input"},
		{"negative investment", Request{UserInput: "x", InvestmentINR: -1}, true, "investment"},
		{"zero investment is valid", Request{UserInput: "x", InvestmentINR: 0}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantErr {
				var invalidErr *InvalidInputError
				if !errors.As(err, &invalidErr) {
					t.Fatalf("Expected InvalidInputError, got %v", err)
				}
				if invalidErr.Field != tt.field {
					t.Errorf("Expected field %q, got %q", tt.field, invalidErr.Field)
				}
			} else if err != nil {
				t.Errorf("Expected valid request, got %v", err)
			}
		})
	}
}

func TestRunEventSequence(t *testing.T) {
	provider := &stubProvider{papers: []research.Paper{
		{Title: "Seeding efficacy", Author: "Rao et al.", Journal: "ArXiv (2021)"},
	}}
	p := newTestPipeline(provider)

	events := collectEvents(t, p.Run(context.Background(), Request{
		UserInput:     "silver iodide cloud seeding from aircraft",
		InvestmentINR: 5e9,
	}))

	if len(events) == 0 {
		t.Fatal("Expected events, got none")
	}

	// Progress must be non-decreasing across the stream.
	last := -1
	for i, ev := range events {
		var progress int
		switch e := ev.(type) {
		case *ProgressEvent:
			progress = e.Progress
		case *AnalysisEvent:
			progress = e.Progress
		case *CompleteEvent:
			progress = e.Progress
		default:
			t.Fatalf("Event %d: unexpected type %T", i, ev)
		}
		if progress < last {
			t.Errorf("Event %d: progress decreased from %d to %d", i, last, progress)
		}
		last = progress
	}

	// The terminal event is the complete event, exactly once.
	complete, ok := events[len(events)-1].(*CompleteEvent)
	if !ok {
		t.Fatalf("Expected terminal CompleteEvent, got %T", events[len(events)-1])
	}
	if complete.Status != StatusComplete {
		t.Errorf("Expected status %q, got %q", StatusComplete, complete.Status)
	}
	if complete.Progress != 100 {
		t.Errorf("Expected progress 100, got %d", complete.Progress)
	}
	if complete.Data == nil {
		t.Fatal("Expected analysis data on complete event")
	}
	if complete.Data.MechanismKey != "monsoon_cloud_seeding" {
		t.Errorf("Expected cloud seeding mechanism, got %q", complete.Data.MechanismKey)
	}
	if len(complete.Papers) != 1 {
		t.Errorf("Expected 1 paper, got %d", len(complete.Papers))
	}
	if complete.MitigatedData == nil || len(complete.MitigatedData.Features) != 2 {
		t.Error("Expected mitigated data with both baseline tracks")
	}

	// An analysis event precedes the complete event.
	foundAnalysis := false
	for _, ev := range events[:len(events)-1] {
		if ae, ok := ev.(*AnalysisEvent); ok {
			foundAnalysis = true
			if ae.Data == nil || ae.Data.FeasibilityScore <= 0 {
				t.Error("Analysis event missing feasibility score")
			}
		}
	}
	if !foundAnalysis {
		t.Error("Expected an analysis event before completion")
	}
}

func TestRunResearchFailureDegrades(t *testing.T) {
	provider := &stubProvider{err: fmt.Errorf("upstream unavailable")}
	p := newTestPipeline(provider)

	events := collectEvents(t, p.Run(context.Background(), Request{
		UserInput:     "cloud seeding",
		InvestmentINR: 1e9,
	}))

	complete, ok := events[len(events)-1].(*CompleteEvent)
	if !ok {
		t.Fatalf("Expected CompleteEvent despite research failure, got %T", events[len(events)-1])
	}
	if complete.Papers == nil {
		t.Error("Expected empty (non-nil) papers slice")
	}
	if len(complete.Papers) != 0 {
		t.Errorf("Expected no papers, got %d", len(complete.Papers))
	}
}

func TestRunNilResearchProvider(t *testing.T) {
	p := newTestPipeline(nil)

	events := collectEvents(t, p.Run(context.Background(), Request{
		UserInput:     "cloud seeding",
		InvestmentINR: 1e9,
	}))

	if _, ok := events[len(events)-1].(*CompleteEvent); !ok {
		t.Fatalf("Expected CompleteEvent with nil provider, got %T", events[len(events)-1])
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(&stubProvider{})
	events := collectEvents(t, p.Run(ctx, Request{
		UserInput:     "cloud seeding",
		InvestmentINR: 1e9,
	}))

	for _, ev := range events {
		if _, ok := ev.(*CompleteEvent); ok {
			t.Error("Cancelled run must not complete")
		}
	}
}

func TestRunEmptyBaselineStillCompletes(t *testing.T) {
	p := New(nil, nil, Config{}, nil, nil)

	events := collectEvents(t, p.Run(context.Background(), Request{
		UserInput:     "cloud seeding",
		InvestmentINR: 1e9,
	}))

	complete, ok := events[len(events)-1].(*CompleteEvent)
	if !ok {
		t.Fatalf("Expected CompleteEvent, got %T", events[len(events)-1])
	}
	if complete.LivesSaved != 0 {
		t.Errorf("Expected zero lives saved with empty baseline, got %d", complete.LivesSaved)
	}
}

// recordingMetrics captures the outcome recorded for a run.
type recordingMetrics struct {
	mu     sync.Mutex
	status string
	count  int
}

func (r *recordingMetrics) RecordAnalysis(mechanism, status string, score float64, livesSaved int, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.count++
}

func TestRunRecordsOutcome(t *testing.T) {
	rec := &recordingMetrics{}
	p := New(testBaseline(), nil, Config{}, nil, rec)

	collectEvents(t, p.Run(context.Background(), Request{
		UserInput:     "cloud seeding",
		InvestmentINR: 1e9,
	}))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.count != 1 {
		t.Fatalf("Expected exactly one recorded outcome, got %d", rec.count)
	}
	if rec.status != "ok" {
		t.Errorf("Expected status ok, got %q", rec.status)
	}
}

func TestStageProgressOrdering(t *testing.T) {
	stages := []Stage{StageParse, StageClassifyAndScore, StagePolicyAlign, StageResearchFetch, StageFinalize}
	prev := -1
	for _, s := range stages {
		if s.Progress() <= prev {
			t.Errorf("Stage %s progress %d not increasing", s, s.Progress())
		}
		prev = s.Progress()
	}
	if StageFinalize.Progress() != 100 {
		t.Errorf("Expected finalize progress 100, got %d", StageFinalize.Progress())
	}
}
