package analytics

import (
	"sort"

	"github.com/moodline/backend/internal/models"
)

// Pattern is one observed (date, mood) pair with its frequency, the time of
// day the mood most often occurred, and the average sentiment of the
// matching entries.
type Pattern struct {
	Date         string           `json:"date"`
	Mood         models.MoodState `json:"mood"`
	Frequency    int              `json:"frequency"`
	TimeOfDay    string           `json:"timeOfDay"`
	AvgSentiment float64          `json:"avgSentiment"`
}

// Time-of-day buckets
const (
	timeOfDayMorning   = "morning"   // 05:00-11:59
	timeOfDayAfternoon = "afternoon" // 12:00-16:59
	timeOfDayEvening   = "evening"   // 17:00-21:59
	timeOfDayNight     = "night"     // 22:00-04:59
)

func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return timeOfDayMorning
	case hour >= 12 && hour < 17:
		return timeOfDayAfternoon
	case hour >= 17 && hour < 22:
		return timeOfDayEvening
	default:
		return timeOfDayNight
	}
}

// BuildPatterns produces one Pattern per (date, mood) pair observed in the
// entries, ordered by date then mood for stable output.
func BuildPatterns(entries []models.MoodEntry) []Pattern {
	valid, _ := sanitize(entries)

	type groupKey struct {
		date string
		mood models.MoodState
	}
	groups := make(map[groupKey][]models.MoodEntry)
	for _, e := range valid {
		key := groupKey{date: dateKey(e.Timestamp), mood: e.MoodState}
		groups[key] = append(groups[key], e)
	}

	patterns := make([]Pattern, 0, len(groups))
	for key, group := range groups {
		todCounts := make(map[string]int, 4)
		var sentimentSum float64
		sentimentCount := 0

		for _, e := range group {
			todCounts[timeOfDay(e.Timestamp.Hour())]++
			if e.Sentiment != nil {
				sentimentSum += *e.Sentiment
				sentimentCount++
			}
		}

		// Dominant bucket, ties broken by fixed bucket order.
		dominant := timeOfDayMorning
		for _, tod := range []string{timeOfDayMorning, timeOfDayAfternoon, timeOfDayEvening, timeOfDayNight} {
			if todCounts[tod] > todCounts[dominant] {
				dominant = tod
			}
		}

		avgSentiment := 0.0
		if sentimentCount > 0 {
			avgSentiment = round2(sentimentSum / float64(sentimentCount))
		}

		patterns = append(patterns, Pattern{
			Date:         key.date,
			Mood:         key.mood,
			Frequency:    len(group),
			TimeOfDay:    dominant,
			AvgSentiment: avgSentiment,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Date != patterns[j].Date {
			return patterns[i].Date < patterns[j].Date
		}
		return patterns[i].Mood < patterns[j].Mood
	})

	return patterns
}
