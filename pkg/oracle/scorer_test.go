package oracle

import (
	"errors"
	"math"
	"testing"

	"indra/pkg/catalog"
)

func TestScoreReferenceScenario(t *testing.T) {
	// Cloud seeding at exactly one deployment unit of funding:
	// base = 1/4.0 = 0.25, policy = 0.72, adequacy = 1.0
	// raw = 0.4*0.25 + 0.4*0.72 + 0.2*1.0 = 0.588 -> 0.59
	rec := catalog.CloudSeeding.Record()
	policy := catalog.PolicyFor(catalog.CloudSeeding)

	score, err := Score(rec, policy, rec.Funding.CostPerUnitINR)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 0.59 {
		t.Errorf("Expected score 0.59, got %v", score)
	}
}

func TestScoreZeroInvestment(t *testing.T) {
	rec := catalog.CloudSeeding.Record()
	policy := catalog.PolicyFor(catalog.CloudSeeding)

	score, err := Score(rec, policy, 0)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	// Funding adequacy contributes nothing: 0.4*0.25 + 0.4*0.72 = 0.388
	if score != 0.39 {
		t.Errorf("Expected score 0.39 with zero investment, got %v", score)
	}
}

func TestScoreBounds(t *testing.T) {
	for _, m := range catalog.All() {
		rec := m.Record()
		policy := catalog.PolicyFor(m)

		for _, investment := range []float64{0, 1, 1e6, 1e9, 1e12, 1e15} {
			score, err := Score(rec, policy, investment)
			if err != nil {
				t.Fatalf("%s: Score failed: %v", m, err)
			}
			if score < 0.10 || score > 0.99 {
				t.Errorf("%s: score %v outside [0.10, 0.99] at investment %v", m, score, investment)
			}
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	rec := catalog.PredictionEnhancement.Record()
	policy := catalog.PolicyFor(catalog.PredictionEnhancement)

	first, err := Score(rec, policy, 3_500_000_000)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		got, err := Score(rec, policy, 3_500_000_000)
		if err != nil {
			t.Fatalf("Score failed: %v", err)
		}
		if got != first {
			t.Fatalf("Score changed between calls: %v then %v", first, got)
		}
	}
}

func TestScoreInvalidMechanismData(t *testing.T) {
	policy := catalog.PolicyFor(catalog.CloudSeeding)

	t.Run("zero gap ratio", func(t *testing.T) {
		rec := catalog.CloudSeeding.Record()
		rec.GapRatio = 0

		_, err := Score(rec, policy, 1e9)
		var invalidErr *InvalidMechanismDataError
		if !errors.As(err, &invalidErr) {
			t.Fatalf("Expected InvalidMechanismDataError, got %v", err)
		}
		if invalidErr.Field != "gap_ratio" {
			t.Errorf("Expected field gap_ratio, got %q", invalidErr.Field)
		}
	})

	t.Run("negative cost per unit", func(t *testing.T) {
		rec := catalog.CloudSeeding.Record()
		rec.Funding.CostPerUnitINR = -100

		_, err := Score(rec, policy, 1e9)
		var invalidErr *InvalidMechanismDataError
		if !errors.As(err, &invalidErr) {
			t.Fatalf("Expected InvalidMechanismDataError, got %v", err)
		}
		if invalidErr.Field != "cost_per_unit_inr" {
			t.Errorf("Expected field cost_per_unit_inr, got %q", invalidErr.Field)
		}
	})
}

func TestInvestmentMultiplier(t *testing.T) {
	tests := []struct {
		name          string
		investmentINR float64
		want          float64
	}{
		{"below one billion floors at 1x", 500_000_000, 1.0},
		{"one billion", 1e9, 1.0},
		{"ten billion", 1e10, 1.5},
		{"hundred billion", 1e11, 2.0},
		{"zero investment", 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvestmentMultiplier(tt.investmentINR)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("InvestmentMultiplier(%v) = %v, want %v", tt.investmentINR, got, tt.want)
			}
		})
	}
}

func TestEffectivenessCap(t *testing.T) {
	// 0.9 * 2.0 would exceed the cap.
	if got := Effectiveness(0.9, 1e11); got != 0.95 {
		t.Errorf("Expected effectiveness capped at 0.95, got %v", got)
	}

	// Below the cap the multiplier applies directly.
	got := Effectiveness(0.4, 1e10)
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Expected effectiveness 0.6, got %v", got)
	}
}

func TestEffectivenessMonotonicInInvestment(t *testing.T) {
	prev := -1.0
	for _, investment := range []float64{0, 1e9, 5e9, 1e10, 1e11, 1e12} {
		got := Effectiveness(0.5, investment)
		if got < prev {
			t.Fatalf("Effectiveness decreased at investment %v: %v < %v", investment, got, prev)
		}
		prev = got
	}
}
