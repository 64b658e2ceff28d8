package repository

import (
	"context"
	"time"

	"github.com/moodline/backend/internal/models"
)

// MoodEntryRepository defines the interface for mood entry data access
type MoodEntryRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	GetByID(ctx context.Context, id string) (*models.MoodEntry, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.MoodEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.MoodEntry, error)
	Update(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error)
	Delete(ctx context.Context, id string) error
	CountByMood(ctx context.Context, userID string) (map[models.MoodState]int64, error)
}

// StreakRepository defines the interface for streak persistence
type StreakRepository interface {
	Upsert(ctx context.Context, streak *models.Streak) (*models.Streak, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Streak, error)
}

// SnapshotRepository defines the interface for analysis snapshot persistence
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.AnalysisSnapshot) (*models.AnalysisSnapshot, error)
	GetLatestByUserID(ctx context.Context, userID string) (*models.AnalysisSnapshot, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
