package models

import "time"

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MoodState is the fixed three-value mood enum
type MoodState string

const (
	MoodHappy    MoodState = "happy"
	MoodSad      MoodState = "sad"
	MoodStressed MoodState = "stressed"
)

// Valid reports whether the mood state is one of the three known values
func (m MoodState) Valid() bool {
	switch m {
	case MoodHappy, MoodSad, MoodStressed:
		return true
	}
	return false
}

// MoodEntry represents one user-submitted mood record
type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MoodState MoodState `json:"mood_state"`
	Timestamp time.Time `json:"timestamp"`
	MoodText  *string   `json:"mood_text,omitempty"`
	Sentiment *float64  `json:"sentiment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RawCreateMoodEntryRequest accepts loosely-typed JSON so field-level
// validation errors can be aggregated instead of failing on the first bind
type RawCreateMoodEntryRequest struct {
	ID        string   `json:"id"`
	MoodState string   `json:"mood_state"`
	Timestamp string   `json:"timestamp"`
	MoodText  *string  `json:"mood_text"`
	Sentiment *float64 `json:"sentiment"`
}

// CreateMoodEntryRequest is the validated form of a create request
type CreateMoodEntryRequest struct {
	ID        string
	MoodState MoodState
	Timestamp time.Time
	MoodText  *string
	Sentiment *float64
}

// UpdateMoodEntryRequest represents a partial update to a mood entry.
// MoodText uses NullableString so "clear the text" (explicit null) can be
// distinguished from "leave it alone" (field absent).
type UpdateMoodEntryRequest struct {
	MoodState *MoodState     `json:"mood_state"`
	Timestamp *time.Time     `json:"timestamp"`
	MoodText  NullableString `json:"mood_text"`
	Sentiment *float64       `json:"sentiment"`
}

// StreakType represents whether a streak is current or historical
type StreakType string

const (
	StreakTypeCurrent StreakType = "current"
	StreakTypeLongest StreakType = "longest"
)

// Streak represents a persisted logging streak
type Streak struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      StreakType `json:"streak_type"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Length    int        `json:"length"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StreakResponse is the API shape for GET /api/v1/analytics/streaks
type StreakResponse struct {
	CurrentStreak int        `json:"currentStreak"`
	StartDate     *time.Time `json:"startDate"`
	LongestStreak int        `json:"longestStreak"`
}
