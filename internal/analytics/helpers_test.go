package analytics

import (
	"fmt"
	"time"

	"github.com/moodline/backend/internal/models"
)

// fixed reference time for calendar-relative computations
var testNow = time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)

func entryAt(mood models.MoodState, ts time.Time) models.MoodEntry {
	return models.MoodEntry{
		ID:        fmt.Sprintf("entry-%d-%s", ts.UnixNano(), mood),
		UserID:    "user-1",
		MoodState: mood,
		Timestamp: ts,
	}
}

// daysAgo returns a timestamp n calendar days before testNow, at noon.
func daysAgo(n int) time.Time {
	d := testNow.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, d.Location())
}

// dailyEntries builds one entry per day for each of the given moods,
// most recent day first (moods[0] lands on testNow's date).
func dailyEntries(moods ...models.MoodState) []models.MoodEntry {
	entries := make([]models.MoodEntry, 0, len(moods))
	for i, m := range moods {
		entries = append(entries, entryAt(m, daysAgo(i)))
	}
	return entries
}
