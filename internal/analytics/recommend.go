package analytics

import "github.com/moodline/backend/internal/models"

// MaxRecommendations caps the advisory list length.
const MaxRecommendations = 6

// lowStabilityThreshold is the stability score below which stability
// advice is appended.
const lowStabilityThreshold = 0.4

// Fixed advisory catalogs. Selection is fully deterministic: applicable
// catalog entries are concatenated in priority order (risk level first,
// then trend, then dominant mood, then stability) and truncated to
// MaxRecommendations.
var riskRecommendations = map[string][]string{
	RiskHigh: {
		"Consider reaching out to a mental health professional",
		"Talk to someone you trust about how you've been feeling",
	},
	RiskMedium: {
		"Try to schedule something you enjoy in the next few days",
		"A short daily walk can help interrupt a low stretch",
	},
	RiskLow: {
		"Keep up your logging habit to stay aware of your patterns",
	},
}

var trendRecommendations = map[string][]string{
	TrendImproving: {
		"Your mood is trending up. Note what has been working and keep doing it",
	},
	TrendDeclining: {
		"Your mood has dipped recently. Be gentle with yourself and lighten your load where you can",
	},
	TrendStable: {
		"Your mood has been steady. Small routines are doing their job",
	},
}

var moodRecommendations = map[models.MoodState][]string{
	models.MoodSad: {
		"Gentle movement and daylight can help lift a low mood",
	},
	models.MoodStressed: {
		"Try a short breathing exercise when stress peaks",
	},
	models.MoodHappy: {
		"Happiness is your dominant mood. Savor it and share it",
	},
}

var stabilityRecommendations = []string{
	"Your mood has been fluctuating. A regular sleep schedule can help even it out",
}

// Recommendations derives the advisory list from computed insights. No
// randomness and no external calls: identical insights always yield an
// identical list.
func Recommendations(ins Insights) []string {
	recs := make([]string, 0, MaxRecommendations)

	recs = append(recs, riskRecommendations[ins.RiskLevel]...)
	recs = append(recs, trendRecommendations[ins.TrendDirection]...)
	recs = append(recs, moodRecommendations[ins.DominantMood]...)
	if ins.MoodStability < lowStabilityThreshold {
		recs = append(recs, stabilityRecommendations...)
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
