package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moodline/backend/internal/models"
	"github.com/moodline/backend/pkg/supabase"
)

type streakRepository struct {
	client *supabase.Client
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(client *supabase.Client) StreakRepository {
	return &streakRepository{client: client}
}

func (r *streakRepository) Upsert(ctx context.Context, streak *models.Streak) (*models.Streak, error) {
	data := map[string]interface{}{
		"user_id":     streak.UserID,
		"streak_type": streak.Type,
		"length":      streak.Length,
		"is_active":   streak.IsActive,
	}
	if streak.StartDate != nil {
		data["start_date"] = streak.StartDate.Format("2006-01-02")
	}
	if streak.EndDate != nil {
		data["end_date"] = streak.EndDate.Format("2006-01-02")
	}

	body, err := r.client.Upsert("streaks", data, "user_id,streak_type")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert streak: %w", err)
	}

	var streaks []models.Streak
	if err := json.Unmarshal(body, &streaks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(streaks) == 0 {
		return nil, fmt.Errorf("no streak returned")
	}

	return &streaks[0], nil
}

func (r *streakRepository) GetByUserID(ctx context.Context, userID string) ([]models.Streak, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "streak_type.asc",
	}

	body, err := r.client.Query("streaks", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get streaks: %w", err)
	}

	var streaks []models.Streak
	if err := json.Unmarshal(body, &streaks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return streaks, nil
}
