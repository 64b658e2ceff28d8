package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moodline/backend/internal/models"
	"github.com/moodline/backend/pkg/supabase"
)

type moodEntryRepository struct {
	client *supabase.Client
}

// NewMoodEntryRepository creates a new mood entry repository
func NewMoodEntryRepository(client *supabase.Client) MoodEntryRepository {
	return &moodEntryRepository{client: client}
}

func (r *moodEntryRepository) Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	data := map[string]interface{}{
		"id":         entry.ID,
		"user_id":    entry.UserID,
		"mood_state": entry.MoodState,
		"timestamp":  entry.Timestamp.Format(time.RFC3339),
	}
	if entry.MoodText != nil {
		data["mood_text"] = *entry.MoodText
	}
	if entry.Sentiment != nil {
		data["sentiment"] = *entry.Sentiment
	}

	body, err := r.client.Insert("mood_entries", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no mood entry returned")
	}

	return &entries[0], nil
}

func (r *moodEntryRepository) GetByID(ctx context.Context, id string) (*models.MoodEntry, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	return &entries[0], nil
}

func (r *moodEntryRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "timestamp.desc",
	}
	if limit > 0 {
		query["limit"] = limit
	}
	if offset > 0 {
		query["offset"] = offset
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *moodEntryRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id":   fmt.Sprintf("eq.%s", userID),
		"timestamp": fmt.Sprintf("gte.%s", startDate.Format(time.RFC3339)),
		"select":    "*",
		"order":     "timestamp.asc",
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// PostgREST can't apply two filters to the same column in one query
	// map, so the end bound is applied here
	filtered := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.After(endDate) {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}

func (r *moodEntryRepository) Update(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error) {
	data := map[string]interface{}{
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if entry.MoodState != "" {
		data["mood_state"] = entry.MoodState
	}
	if !entry.Timestamp.IsZero() {
		data["timestamp"] = entry.Timestamp.Format(time.RFC3339)
	}
	if entry.MoodText != nil {
		// Empty string clears the column
		if *entry.MoodText == "" {
			data["mood_text"] = nil
		} else {
			data["mood_text"] = *entry.MoodText
		}
	}
	if entry.Sentiment != nil {
		data["sentiment"] = *entry.Sentiment
	}

	body, err := r.client.Update("mood_entries", id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no mood entry returned")
	}

	return &entries[0], nil
}

func (r *moodEntryRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("mood_entries", id); err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	return nil
}

func (r *moodEntryRepository) CountByMood(ctx context.Context, userID string) (map[models.MoodState]int64, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "mood_state",
	}

	body, err := r.client.Query("mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to count mood entries: %w", err)
	}

	var rows []struct {
		MoodState models.MoodState `json:"mood_state"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	counts := make(map[models.MoodState]int64, 3)
	for _, row := range rows {
		counts[row.MoodState]++
	}

	return counts, nil
}
