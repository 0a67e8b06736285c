// Package oracle implements the intervention analysis engine: feasibility
// scoring and the staged streaming pipeline that sequences classification,
// scoring, research fetch and track mitigation into an ordered event stream.
//
// A pipeline run is stateless: nothing persists from one request to the
// next, and the baseline track collection it reads is immutable.
package oracle
