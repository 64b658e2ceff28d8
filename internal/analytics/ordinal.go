// Package analytics implements the mood-pattern analytics and risk-scoring
// engine: streak calculation, consecutive-sad-day detection, mood-stability
// scoring, trend classification, and rule-based recommendations.
//
// The engine is pure computation over an in-memory entry list. It performs
// no I/O, holds no state between calls, and is deterministic: the same
// entries and reference time always produce the same result.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/moodline/backend/internal/models"
)

const dateLayout = "2006-01-02"

// moodOrdinal is the single canonical mapping of mood states onto an
// ordinal scale. Happy and sad are the poles, stressed is medial.
var moodOrdinal = map[models.MoodState]float64{
	models.MoodHappy:    3,
	models.MoodStressed: 2,
	models.MoodSad:      1,
}

// dateKey normalizes a timestamp to its calendar date, discarding time of day.
func dateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// sanitize drops malformed entries (out-of-enum mood state or zero timestamp)
// and returns the survivors sorted ascending by timestamp. Dropped entries
// produce a warning rather than failing the whole analysis.
func sanitize(entries []models.MoodEntry) ([]models.MoodEntry, int) {
	valid := make([]models.MoodEntry, 0, len(entries))
	dropped := 0
	for _, e := range entries {
		if !e.MoodState.Valid() || e.Timestamp.IsZero() {
			dropped++
			continue
		}
		valid = append(valid, e)
	}
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Timestamp.Before(valid[j].Timestamp)
	})
	return valid, dropped
}

// dayBuckets groups entries by calendar date.
func dayBuckets(entries []models.MoodEntry) map[string][]models.MoodEntry {
	buckets := make(map[string][]models.MoodEntry)
	for _, e := range entries {
		key := dateKey(e.Timestamp)
		buckets[key] = append(buckets[key], e)
	}
	return buckets
}

// moodFractions returns the fraction of entries in each mood state.
func moodFractions(entries []models.MoodEntry) map[models.MoodState]float64 {
	fractions := make(map[models.MoodState]float64, 3)
	if len(entries) == 0 {
		return fractions
	}
	for _, e := range entries {
		fractions[e.MoodState]++
	}
	for state := range fractions {
		fractions[state] /= float64(len(entries))
	}
	return fractions
}

// dominantMood returns the most frequent mood state. Ties resolve in ordinal
// order (happy, stressed, sad) so the result is deterministic.
func dominantMood(entries []models.MoodEntry) models.MoodState {
	if len(entries) == 0 {
		return ""
	}

	counts := make(map[models.MoodState]int, 3)
	for _, e := range entries {
		counts[e.MoodState]++
	}

	order := []models.MoodState{models.MoodHappy, models.MoodStressed, models.MoodSad}
	best := order[0]
	for _, state := range order {
		if counts[state] > counts[best] {
			best = state
		}
	}
	return best
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
