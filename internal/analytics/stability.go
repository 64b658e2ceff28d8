package analytics

import (
	"math"

	"github.com/moodline/backend/internal/models"
)

// DefaultStability is the conservative score used when there are too few
// entries to measure volatility.
const DefaultStability = 0.5

// StabilityScore quantifies mood volatility over the given entries as
// round(1 / (sqrt(variance) + 0.1), 2), where variance is the population
// variance of the ordinal mood sequence. The score can exceed 1.0 when
// variance is very small.
//
// Returns (DefaultStability, false) with fewer than two valid entries,
// since variance of a single observation is meaningless.
func StabilityScore(entries []models.MoodEntry) (float64, bool) {
	valid, _ := sanitize(entries)
	if len(valid) < 2 {
		return DefaultStability, false
	}

	values := make([]float64, len(valid))
	for i, e := range valid {
		values[i] = moodOrdinal[e.MoodState]
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return round2(1 / (math.Sqrt(variance) + 0.1)), true
}
