package analytics

import (
	"time"

	"github.com/moodline/backend/internal/models"
)

// NegativeWindowDays is how far back the consecutive-sad-day scan looks.
const NegativeWindowDays = 30

// ConsecutiveSadDays computes the longest recent run of majority-sad days,
// scanning backward from today over the last NegativeWindowDays days.
//
// A day counts as sad when strictly more than half of that day's entries are
// sad. Days with no entries are skipped rather than breaking the run: gaps
// in logging are not evidence of improvement. The scan terminates entirely
// at the first non-sad day that has entries.
func ConsecutiveSadDays(entries []models.MoodEntry, now time.Time) int {
	valid, _ := sanitize(entries)
	if len(valid) == 0 {
		return 0
	}

	buckets := dayBuckets(valid)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	run := 0
	for offset := 0; offset < NegativeWindowDays; offset++ {
		day := buckets[dateKey(today.AddDate(0, 0, -offset))]
		if len(day) == 0 {
			continue
		}

		sad := 0
		for _, e := range day {
			if e.MoodState == models.MoodSad {
				sad++
			}
		}

		// Strict majority: 2 sad out of 3 counts, 1 out of 2 does not.
		if sad*2 > len(day) {
			run++
		} else {
			break
		}
	}

	return run
}
