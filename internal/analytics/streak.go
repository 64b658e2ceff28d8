package analytics

import (
	"time"

	"github.com/moodline/backend/internal/models"
)

// StreakState describes the current consecutive-day logging streak.
// StartDate is the earliest date in the unbroken run, nil when there is
// no active streak.
type StreakState struct {
	Current   int        `json:"current"`
	StartDate *time.Time `json:"startDate"`
}

// CurrentStreak computes the consecutive-day logging streak ending today
// or yesterday. Entries may be unordered; multiple entries on the same day
// count once. Entries only in the future relative to now do not anchor a
// streak because neither today nor yesterday qualifies.
func CurrentStreak(entries []models.MoodEntry, now time.Time) StreakState {
	valid, _ := sanitize(entries)
	if len(valid) == 0 {
		return StreakState{}
	}

	days := make(map[string]bool, len(valid))
	for _, e := range valid {
		days[dateKey(e.Timestamp)] = true
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	anchor := today
	if !days[dateKey(anchor)] {
		anchor = today.AddDate(0, 0, -1)
		if !days[dateKey(anchor)] {
			return StreakState{}
		}
	}

	// Walk backward one calendar day at a time until the first gap.
	streak := 0
	start := anchor
	for d := anchor; days[dateKey(d)]; d = d.AddDate(0, 0, -1) {
		streak++
		start = d
	}

	return StreakState{Current: streak, StartDate: &start}
}

// LongestStreak computes the longest consecutive-day run anywhere in the
// given entries, not just the one ending now. Useful over a bounded history
// window; callers keep an all-time maximum elsewhere.
func LongestStreak(entries []models.MoodEntry) int {
	valid, _ := sanitize(entries)
	if len(valid) == 0 {
		return 0
	}

	days := make(map[string]bool, len(valid))
	for _, e := range valid {
		days[dateKey(e.Timestamp)] = true
	}

	longest := 0
	for _, e := range valid {
		day := time.Date(e.Timestamp.Year(), e.Timestamp.Month(), e.Timestamp.Day(), 0, 0, 0, 0, e.Timestamp.Location())
		// Only count runs from their first day
		if days[dateKey(day.AddDate(0, 0, -1))] {
			continue
		}
		run := 0
		for d := day; days[dateKey(d)]; d = d.AddDate(0, 0, 1) {
			run++
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}
