package service

import (
	"context"

	"github.com/moodline/backend/internal/models"
)

// MoodEntryService defines the interface for mood entry business logic
type MoodEntryService interface {
	CreateEntry(ctx context.Context, userID string, req *models.CreateMoodEntryRequest) (*models.MoodEntry, error)
	GetEntry(ctx context.Context, userID, entryID string) (*models.MoodEntry, error)
	GetUserEntries(ctx context.Context, userID string, limit, offset int) ([]models.MoodEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, req *models.UpdateMoodEntryRequest) (*models.MoodEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// AnalysisService defines the interface for mood analytics business logic
type AnalysisService interface {
	GetAnalysis(ctx context.Context, userID string, enrich bool) (*AnalysisResponse, error)
	GetRecommendations(ctx context.Context, userID string) ([]string, error)
	GetSummary(ctx context.Context, userID string) (*MoodSummary, error)
}

// StreakService defines the interface for streak business logic
type StreakService interface {
	GetStreaks(ctx context.Context, userID string) (*models.StreakResponse, error)
}
