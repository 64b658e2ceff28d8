package analytics

import (
	"fmt"
	"time"

	"github.com/moodline/backend/internal/models"
)

// Insights holds the derived mood statistics for an analysis window.
type Insights struct {
	DominantMood     models.MoodState `json:"dominantMood"`
	MoodStability    float64          `json:"moodStability"`
	RiskLevel        string           `json:"riskLevel"`
	TrendDirection   string           `json:"trendDirection"`
	CriticalPatterns []string         `json:"criticalPatterns"`
}

// Result is the full output of one analysis run. It is constructed fresh
// per invocation and never mutated afterwards.
//
// Warnings distinguish a result computed on full data from one computed on
// degraded or partial data; an empty Warnings slice means every entry the
// caller supplied contributed to the result.
type Result struct {
	Patterns        []Pattern `json:"patterns"`
	Insights        Insights  `json:"insights"`
	Recommendations []string  `json:"recommendations"`
	Warnings        []string  `json:"warnings,omitempty"`
}

// Analyze runs the full engine over the given entries. Entries need not be
// sorted; malformed ones are dropped with a warning rather than failing the
// analysis. now anchors all calendar-relative computations so results are
// reproducible in tests.
func Analyze(entries []models.MoodEntry, now time.Time) *Result {
	valid, dropped := sanitize(entries)

	var warnings []string
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d malformed entries excluded from analysis", dropped))
	}

	fractions := moodFractions(valid)
	sadFraction := fractions[models.MoodSad]
	stressedFraction := fractions[models.MoodStressed]

	consecutiveSad := ConsecutiveSadDays(valid, now)

	stability, measured := StabilityScore(valid)
	if !measured {
		warnings = append(warnings, "too few entries to measure stability, using default")
	}

	trend := TrendDirection(valid)
	if trend == TrendInsufficientData {
		warnings = append(warnings, "too few entries to compute a trend")
	}

	var moodTexts []string
	for _, e := range valid {
		if e.MoodText != nil {
			moodTexts = append(moodTexts, *e.MoodText)
		}
	}

	insights := Insights{
		DominantMood:     dominantMood(valid),
		MoodStability:    stability,
		RiskLevel:        ClassifyRisk(consecutiveSad, sadFraction, stressedFraction),
		TrendDirection:   trend,
		CriticalPatterns: CriticalPatterns(consecutiveSad, stressedFraction, stability, len(valid), moodTexts),
	}

	return &Result{
		Patterns:        BuildPatterns(valid),
		Insights:        insights,
		Recommendations: Recommendations(insights),
		Warnings:        warnings,
	}
}
