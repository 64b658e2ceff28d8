package analytics

import "github.com/moodline/backend/internal/models"

// Trend direction values
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

const (
	// trendThreshold is the minimum mean-ordinal difference between the
	// recent and older windows to call a trend.
	trendThreshold = 0.3

	// trendWindow is the number of entries in each comparison window.
	trendWindow = 7

	// minEntriesForTrend is the minimum total entries for any trend call.
	minEntriesForTrend = 3
)

// TrendDirection classifies the recent trajectory by comparing the mean
// ordinal mood of the last trendWindow entries against the trendWindow
// entries before them. With fewer than minEntriesForTrend entries it
// returns the insufficient_data sentinel; with no older window to compare
// against it returns stable.
func TrendDirection(entries []models.MoodEntry) string {
	valid, _ := sanitize(entries)
	if len(valid) < minEntriesForTrend {
		return TrendInsufficientData
	}

	recentStart := len(valid) - trendWindow
	if recentStart < 0 {
		recentStart = 0
	}
	recent := valid[recentStart:]

	olderStart := recentStart - trendWindow
	if olderStart < 0 {
		olderStart = 0
	}
	older := valid[olderStart:recentStart]
	if len(older) == 0 {
		return TrendStable
	}

	diff := meanOrdinal(recent) - meanOrdinal(older)
	switch {
	case diff > trendThreshold:
		return TrendImproving
	case diff < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanOrdinal(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += moodOrdinal[e.MoodState]
	}
	return sum / float64(len(entries))
}
