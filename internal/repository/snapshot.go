package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moodline/backend/internal/models"
	"github.com/moodline/backend/pkg/supabase"
)

type snapshotRepository struct {
	client *supabase.Client
}

// NewSnapshotRepository creates a new analysis snapshot repository
func NewSnapshotRepository(client *supabase.Client) SnapshotRepository {
	return &snapshotRepository{client: client}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *models.AnalysisSnapshot) (*models.AnalysisSnapshot, error) {
	data := map[string]interface{}{
		"user_id":      snapshot.UserID,
		"result":       snapshot.Result,
		"generated_at": snapshot.GeneratedAt.Format(time.RFC3339),
	}
	if snapshot.ID != "" {
		data["id"] = snapshot.ID
	}

	body, err := r.client.Insert("analysis_snapshots", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis snapshot: %w", err)
	}

	var snapshots []models.AnalysisSnapshot
	if err := json.Unmarshal(body, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshot returned")
	}

	return &snapshots[0], nil
}

func (r *snapshotRepository) GetLatestByUserID(ctx context.Context, userID string) (*models.AnalysisSnapshot, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "generated_at.desc",
		"limit":   1,
	}

	body, err := r.client.Query("analysis_snapshots", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis snapshots: %w", err)
	}

	var snapshots []models.AnalysisSnapshot
	if err := json.Unmarshal(body, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(snapshots) == 0 {
		return nil, nil
	}

	return &snapshots[0], nil
}

func (r *snapshotRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
	}

	if err := r.client.DeleteWhere("analysis_snapshots", query); err != nil {
		return fmt.Errorf("failed to delete analysis snapshots: %w", err)
	}

	return nil
}
