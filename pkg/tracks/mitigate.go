package tracks

import "math"

const (
	// SensitivityFactor scales effectiveness into an intensity reduction
	// ratio. Full effectiveness halves a track's intensity; it never erases
	// the storm.
	SensitivityFactor = 0.5

	// LivesPerUnit converts cumulative intensity reduction (kt, summed over
	// all tracks) into the protected-population heuristic.
	LivesPerUnit = 5
)

// Mitigate applies the decay transform to the collection at the given
// effectiveness in [0,1] and returns a fresh mitigated collection plus the
// lives-saved estimate.
//
// Guarantees: output track count and order equal the input; geometry is
// shared untouched; only intensity and the Mitigated flag change;
// effectiveness 0 is the identity transform with zero lives saved; lives
// saved is monotonically non-decreasing in effectiveness.
func Mitigate(c *Collection, effectiveness float64) (*Collection, int) {
	reductionRatio := effectiveness * SensitivityFactor

	out := make([]Track, len(c.tracks))
	totalReduction := 0.0
	for i, t := range c.tracks {
		newIntensity := t.MaxIntensity * (1 - reductionRatio)
		if newIntensity < 0 {
			newIntensity = 0
		}
		totalReduction += t.MaxIntensity - newIntensity

		t.MaxIntensity = newIntensity
		t.Mitigated = true
		out[i] = t
	}

	livesSaved := int(math.Floor(totalReduction * LivesPerUnit))
	return &Collection{tracks: out}, livesSaved
}
