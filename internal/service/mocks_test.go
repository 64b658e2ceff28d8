package service

import (
	"context"
	"time"

	"github.com/moodline/backend/internal/analytics"
	"github.com/moodline/backend/internal/models"
)

// mockMoodEntryRepo is a hand-rolled mock with overridable function fields.
// Unset fields return zero values.
type mockMoodEntryRepo struct {
	createFn      func(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	getByIDFn     func(ctx context.Context, id string) (*models.MoodEntry, error)
	getByUserIDFn func(ctx context.Context, userID string, limit, offset int) ([]models.MoodEntry, error)
	getByRangeFn  func(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.MoodEntry, error)
	updateFn      func(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error)
	deleteFn      func(ctx context.Context, id string) error
	countByMoodFn func(ctx context.Context, userID string) (map[models.MoodState]int64, error)
}

func (m *mockMoodEntryRepo) Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	if m.createFn != nil {
		return m.createFn(ctx, entry)
	}
	return entry, nil
}

func (m *mockMoodEntryRepo) GetByID(ctx context.Context, id string) (*models.MoodEntry, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMoodEntryRepo) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.MoodEntry, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockMoodEntryRepo) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.MoodEntry, error) {
	if m.getByRangeFn != nil {
		return m.getByRangeFn(ctx, userID, startDate, endDate)
	}
	return nil, nil
}

func (m *mockMoodEntryRepo) Update(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, entry)
	}
	return entry, nil
}

func (m *mockMoodEntryRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockMoodEntryRepo) CountByMood(ctx context.Context, userID string) (map[models.MoodState]int64, error) {
	if m.countByMoodFn != nil {
		return m.countByMoodFn(ctx, userID)
	}
	return nil, nil
}

type mockStreakRepo struct {
	upsertFn      func(ctx context.Context, streak *models.Streak) (*models.Streak, error)
	getByUserIDFn func(ctx context.Context, userID string) ([]models.Streak, error)
}

func (m *mockStreakRepo) Upsert(ctx context.Context, streak *models.Streak) (*models.Streak, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, streak)
	}
	return streak, nil
}

func (m *mockStreakRepo) GetByUserID(ctx context.Context, userID string) ([]models.Streak, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, nil
}

type mockSnapshotRepo struct {
	createFn            func(ctx context.Context, snapshot *models.AnalysisSnapshot) (*models.AnalysisSnapshot, error)
	getLatestByUserIDFn func(ctx context.Context, userID string) (*models.AnalysisSnapshot, error)
	deleteByUserIDFn    func(ctx context.Context, userID string) error
}

func (m *mockSnapshotRepo) Create(ctx context.Context, snapshot *models.AnalysisSnapshot) (*models.AnalysisSnapshot, error) {
	if m.createFn != nil {
		return m.createFn(ctx, snapshot)
	}
	return snapshot, nil
}

func (m *mockSnapshotRepo) GetLatestByUserID(ctx context.Context, userID string) (*models.AnalysisSnapshot, error) {
	if m.getLatestByUserIDFn != nil {
		return m.getLatestByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSnapshotRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

type mockEnricher struct {
	classifyFn func(ctx context.Context, entries []models.MoodEntry, statistical *analytics.Result) (*EnrichmentResult, error)
}

func (m *mockEnricher) Classify(ctx context.Context, entries []models.MoodEntry, statistical *analytics.Result) (*EnrichmentResult, error) {
	if m.classifyFn != nil {
		return m.classifyFn(ctx, entries, statistical)
	}
	return nil, nil
}
