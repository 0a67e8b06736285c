package oracle

import (
	"indra/pkg/catalog"
	"indra/pkg/research"
	"indra/pkg/tracks"
)

// Event statuses on the wire.
const (
	StatusProgress = "progress"
	StatusAnalysis = "analysis"
	StatusComplete = "complete"
	StatusError    = "error"
)

// Event is one item in the analysis output stream. The variant is closed:
// ProgressEvent, AnalysisEvent, CompleteEvent and ErrorEvent. Each variant
// marshals directly to its wire shape.
type Event interface {
	event()
}

// ProgressEvent reports stage progress.
type ProgressEvent struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

func (*ProgressEvent) event() {}

// Bottleneck describes the capability gap limiting a mechanism.
type Bottleneck struct {
	CurrentCapability  string  `json:"current_capability"`
	RequiredCapability string  `json:"required_capability"`
	GapRatio           float64 `json:"gap_ratio"`
}

// AnalysisResult is the transient per-request analysis payload. It is owned
// by the caller; the engine holds no reference to it after the stream ends.
type AnalysisResult struct {
	Mechanism        string                   `json:"mechanism"`
	MechanismKey     string                   `json:"mechanism_key"`
	FeasibilityScore float64                  `json:"feasibility_score"`
	Bottleneck       Bottleneck               `json:"bottleneck"`
	ResearchVectors  []catalog.ResearchVector `json:"research_vectors"`
	EconomicContext  catalog.FundingEstimate  `json:"economic_context"`
	PolicyContext    catalog.PolicyContext    `json:"policy_context"`
	Papers           []research.Paper         `json:"papers,omitempty"`
}

// AnalysisEvent carries the mechanism and feasibility result as soon as it
// is computed, before research data and mitigation are ready.
type AnalysisEvent struct {
	Status   string          `json:"status"`
	Progress int             `json:"progress"`
	Data     *AnalysisResult `json:"data"`
	Message  string          `json:"message"`
}

func (*AnalysisEvent) event() {}

// CompleteEvent is the terminal success event.
type CompleteEvent struct {
	Status        string                    `json:"status"`
	Progress      int                       `json:"progress"`
	Score         float64                   `json:"score"`
	LivesSaved    int                       `json:"lives_saved"`
	MitigatedData *tracks.FeatureCollection `json:"mitigated_data"`
	Papers        []research.Paper          `json:"papers"`
	Data          *AnalysisResult           `json:"data"`
}

func (*CompleteEvent) event() {}

// ErrorEvent is the terminal failure event. It is the only event emitted
// after a stage error; the stream closes after it.
type ErrorEvent struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (*ErrorEvent) event() {}
