package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"indra/pkg/catalog"
	"indra/pkg/research"
	"indra/pkg/tracks"
)

// Stage is one step of the fixed analysis sequence.
type Stage int

const (
	StageParse Stage = iota
	StageClassifyAndScore
	StagePolicyAlign
	StageResearchFetch
	StageFinalize
)

// Progress returns the wire progress percentage reported for the stage.
func (s Stage) Progress() int {
	switch s {
	case StageParse:
		return 10
	case StageClassifyAndScore:
		return 40
	case StagePolicyAlign:
		return 60
	case StageResearchFetch:
		return 85
	case StageFinalize:
		return 100
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageClassifyAndScore:
		return "classify_and_score"
	case StagePolicyAlign:
		return "policy_align"
	case StageResearchFetch:
		return "research_fetch"
	case StageFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// Request is one intervention analysis request. InvestmentINR is the
// proposed investment in rupees.
type Request struct {
	UserInput     string
	InvestmentINR float64
}

// InvalidInputError rejects a request at the boundary, before any stage
// runs.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Message)
}

// ValidateRequest checks boundary-level request validity: non-empty
// strategy text and a finite, non-negative investment.
func ValidateRequest(req Request) error {
	if strings.TrimSpace(req.UserInput) == "" {
		return &InvalidInputError{Field: "user_input", Message: "must not be empty"}
	}
	if math.IsNaN(req.InvestmentINR) || math.IsInf(req.InvestmentINR, 0) {
		return &InvalidInputError{Field: "investment", Message: "must be a finite number"}
	}
	if req.InvestmentINR < 0 {
		return &InvalidInputError{Field: "investment", Message: "must not be negative"}
	}
	return nil
}

// MetricsRecorder receives per-analysis outcome metrics. Implementations
// must be safe for concurrent use.
type MetricsRecorder interface {
	RecordAnalysis(mechanism, status string, score float64, livesSaved int, duration time.Duration)
}

// Config tunes pipeline behaviour.
type Config struct {
	// StageDelay is the cosmetic pacing delay between stages. Zero disables
	// pacing; tests run with zero.
	StageDelay time.Duration

	// ResearchMaxResults bounds the citation fetch. Default 5.
	ResearchMaxResults int
}

// Pipeline runs intervention analyses as ordered event streams. It is
// stateless across invocations and safe for unlimited concurrent runs: the
// catalogue and baseline collection it reads are immutable.
type Pipeline struct {
	baseline *tracks.Collection
	research research.Provider
	cfg      Config
	logger   *slog.Logger
	metrics  MetricsRecorder
}

// New creates a pipeline over the baseline collection. provider and metrics
// may be nil: a nil provider degrades every research fetch to an empty
// citation list; a nil recorder disables outcome metrics.
func New(baseline *tracks.Collection, provider research.Provider, cfg Config, logger *slog.Logger, metrics MetricsRecorder) *Pipeline {
	if baseline == nil {
		baseline = tracks.NewCollection(nil)
	}
	if cfg.ResearchMaxResults <= 0 {
		cfg.ResearchMaxResults = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		baseline: baseline,
		research: provider,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}

// runState accumulates per-run results across stages.
type runState struct {
	record     catalog.Record
	result     *AnalysisResult
	baseScore  float64
	finalScore float64
	livesSaved int
	papers     []research.Paper
}

// Run executes one analysis and returns its event channel. The channel is
// closed after the terminal event. Cancelling the context stops further
// emission after the in-flight stage completes; events already emitted are
// never retracted.
func (p *Pipeline) Run(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, 8)
	go p.run(ctx, req, events)
	return events
}

func (p *Pipeline) run(ctx context.Context, req Request, events chan<- Event) {
	defer close(events)

	start := time.Now()
	log := p.logger.With("run_id", uuid.NewString())

	var st runState
	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis stage panicked",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			p.emit(ctx, events, &ErrorEvent{Status: StatusError, Message: "internal error during analysis"})
			p.record(&st, "panic", time.Since(start))
		}
	}()

	log.InfoContext(ctx, "analysis started",
		"investment_inr", req.InvestmentINR,
		"input_len", len(req.UserInput),
	)

	for stage := StageParse; stage <= StageFinalize; stage++ {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "analysis cancelled", "stage", stage.String())
			p.record(&st, "cancelled", time.Since(start))
			return
		}
		if err := p.runStage(ctx, stage, req, &st, events, log); err != nil {
			log.ErrorContext(ctx, "analysis stage failed",
				"stage", stage.String(),
				"error", err,
			)
			p.emit(ctx, events, &ErrorEvent{Status: StatusError, Message: err.Error()})
			p.record(&st, "error", time.Since(start))
			return
		}
		if stage != StageFinalize {
			p.pace(ctx)
		}
	}

	log.InfoContext(ctx, "analysis complete",
		"mechanism", st.record.Key,
		"feasibility_score", st.baseScore,
		"effectiveness", st.finalScore,
		"lives_saved", st.livesSaved,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	p.record(&st, "ok", time.Since(start))
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, req Request, st *runState, events chan<- Event, log *slog.Logger) error {
	switch stage {
	case StageParse:
		p.emit(ctx, events, progressEvent(stage, "Parsing intervention semantics..."))

	case StageClassifyAndScore:
		mech := catalog.Classify(req.UserInput)
		rec := mech.Record()
		policy := catalog.PolicyFor(mech)

		score, err := Score(rec, policy, req.InvestmentINR)
		if err != nil {
			return err
		}

		st.record = rec
		st.baseScore = score
		st.result = &AnalysisResult{
			Mechanism:        rec.Name,
			MechanismKey:     rec.Key,
			FeasibilityScore: score,
			Bottleneck: Bottleneck{
				CurrentCapability:  rec.CurrentCapability,
				RequiredCapability: rec.RequiredCapability,
				GapRatio:           rec.GapRatio,
			},
			ResearchVectors: rec.ResearchVectors,
			EconomicContext: rec.Funding,
			PolicyContext:   policy,
		}

		p.emit(ctx, events, progressEvent(stage, "Classifying intervention mechanism..."))
		p.emit(ctx, events, &AnalysisEvent{
			Status:   StatusAnalysis,
			Progress: stage.Progress(),
			Data:     st.result,
			Message:  fmt.Sprintf("Identified mechanism: %s", rec.Name),
		})

	case StagePolicyAlign:
		p.emit(ctx, events, progressEvent(stage, fmt.Sprintf(
			"Mapping policy alignment across %d ministries...",
			len(st.result.PolicyContext.Ministries),
		)))

	case StageResearchFetch:
		query := ""
		if len(st.record.ResearchVectors) > 0 {
			query = st.record.ResearchVectors[0].SearchQuery
		}
		p.emit(ctx, events, progressEvent(stage, fmt.Sprintf("Querying research: [%s]", query)))

		if p.research != nil && query != "" {
			papers, err := p.research.Search(ctx, query, p.cfg.ResearchMaxResults)
			if err != nil {
				// External fetch failure degrades to an empty citation
				// list; there is no retry.
				log.WarnContext(ctx, "research fetch failed, continuing without citations",
					"provider", p.research.Name(),
					"query", query,
					"error", err,
				)
				papers = nil
			}
			st.papers = papers
		}

	case StageFinalize:
		effectiveness := Effectiveness(st.baseScore, req.InvestmentINR)
		mitigated, livesSaved := tracks.Mitigate(p.baseline, effectiveness)

		st.finalScore = effectiveness
		st.livesSaved = livesSaved
		st.result.Papers = st.papers

		papers := st.papers
		if papers == nil {
			papers = []research.Paper{}
		}
		p.emit(ctx, events, &CompleteEvent{
			Status:        StatusComplete,
			Progress:      stage.Progress(),
			Score:         effectiveness,
			LivesSaved:    livesSaved,
			MitigatedData: mitigated.GeoJSON(),
			Papers:        papers,
			Data:          st.result,
		})
	}
	return nil
}

func progressEvent(stage Stage, message string) *ProgressEvent {
	return &ProgressEvent{
		Status:   StatusProgress,
		Progress: stage.Progress(),
		Message:  message,
	}
}

// emit delivers an event unless the consumer has gone away.
func (p *Pipeline) emit(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

// pace sleeps the cosmetic stage delay, cancellation-aware.
func (p *Pipeline) pace(ctx context.Context) {
	if p.cfg.StageDelay <= 0 {
		return
	}
	timer := time.NewTimer(p.cfg.StageDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (p *Pipeline) record(st *runState, status string, duration time.Duration) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordAnalysis(st.record.Key, status, st.finalScore, st.livesSaved, duration)
}
