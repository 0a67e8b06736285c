package oracle

import (
	"fmt"
	"math"

	"indra/pkg/catalog"
)

// Feasibility score bounds and component weights.
const (
	minFeasibility = 0.10
	maxFeasibility = 0.99

	weightGap     = 0.4
	weightPolicy  = 0.4
	weightFunding = 0.2
)

// investmentScale converts rupees into the billions the investment
// multiplier operates on. All investment amounts in this package are INR;
// this is the only conversion factor.
const investmentScale = 1e9

// maxEffectiveness is the global cap on any single analysis's effectiveness
// after the investment multiplier.
const maxEffectiveness = 0.95

// InvalidMechanismDataError reports a catalogue record whose numeric
// attributes make scoring impossible. It is fatal to the single analysis
// that hit it and is never silently defaulted.
type InvalidMechanismDataError struct {
	Mechanism string
	Field     string
	Value     float64
}

func (e *InvalidMechanismDataError) Error() string {
	return fmt.Sprintf("invalid mechanism data for %s: %s = %v (must be > 0)", e.Mechanism, e.Field, e.Value)
}

// Score computes the bounded feasibility score for a mechanism record under
// a policy context and an investment in rupees:
//
//	base            = 1 / gap_ratio
//	funding_adequacy = 0 if investment <= 0, else min(1, investment/cost_per_unit)
//	raw             = 0.4*base + 0.4*political_feasibility + 0.2*funding_adequacy
//
// The result is clamped to [0.10, 0.99] and rounded to two decimals.
// Deterministic for identical inputs.
func Score(rec catalog.Record, policy catalog.PolicyContext, investmentINR float64) (float64, error) {
	if rec.GapRatio <= 0 {
		return 0, &InvalidMechanismDataError{Mechanism: rec.Key, Field: "gap_ratio", Value: rec.GapRatio}
	}
	if rec.Funding.CostPerUnitINR <= 0 {
		return 0, &InvalidMechanismDataError{Mechanism: rec.Key, Field: "cost_per_unit_inr", Value: rec.Funding.CostPerUnitINR}
	}

	base := 1 / rec.GapRatio

	fundingAdequacy := 0.0
	if investmentINR > 0 {
		fundingAdequacy = math.Min(1, investmentINR/rec.Funding.CostPerUnitINR)
	}

	raw := weightGap*base + weightPolicy*policy.PoliticalFeasibilityScore + weightFunding*fundingAdequacy

	clamped := math.Min(maxFeasibility, math.Max(minFeasibility, raw))
	return math.Round(clamped*100) / 100, nil
}

// Effectiveness applies the investment multiplier to a base feasibility
// score. The multiplier operates on billions of rupees: an investment of
// one billion INR yields 1.0x, ten billion 1.5x, a hundred billion 2.0x.
// The result is capped at 0.95.
func Effectiveness(baseScore, investmentINR float64) float64 {
	multiplier := 1 + math.Log10(math.Max(1, investmentINR/investmentScale))*0.5
	return math.Min(maxEffectiveness, baseScore*multiplier)
}

// InvestmentMultiplier exposes the multiplier itself for progress messages.
func InvestmentMultiplier(investmentINR float64) float64 {
	return 1 + math.Log10(math.Max(1, investmentINR/investmentScale))*0.5
}
