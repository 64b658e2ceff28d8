package service

import (
	"context"
	"time"

	"github.com/moodline/backend/internal/analytics"
	"github.com/moodline/backend/internal/logger"
	"github.com/moodline/backend/internal/models"
	"github.com/moodline/backend/internal/repository"
)

// streakWindowDays bounds how far back streak computation fetches entries.
// A year of history is more than any plausible streak length needs while
// keeping the query cheap.
const streakWindowDays = 365

type streakService struct {
	entryRepo  repository.MoodEntryRepository
	streakRepo repository.StreakRepository
	now        func() time.Time
}

// NewStreakService creates a new streak service
func NewStreakService(entryRepo repository.MoodEntryRepository, streakRepo repository.StreakRepository) StreakService {
	return &streakService{
		entryRepo:  entryRepo,
		streakRepo: streakRepo,
		now:        time.Now,
	}
}

func (s *streakService) GetStreaks(ctx context.Context, userID string) (*models.StreakResponse, error) {
	now := s.now().UTC()
	start := now.AddDate(0, 0, -streakWindowDays)

	entries, err := s.entryRepo.GetByUserIDAndDateRange(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}

	state := analytics.CurrentStreak(entries, now)

	longest := analytics.LongestStreak(entries)
	if state.Current > longest {
		longest = state.Current
	}
	persisted, readErr := s.streakRepo.GetByUserID(ctx, userID)
	if readErr != nil {
		// A read failure degrades the longest streak to what the history
		// window shows rather than failing the whole request. The stored
		// record may be larger, so it must not be written back in this
		// state.
		logger.Ctx(ctx).Warn("failed to load persisted streaks",
			logger.String("user_id", userID),
			logger.Err(readErr))
		persisted = nil
	}
	for _, st := range persisted {
		if st.Type == models.StreakTypeLongest && st.Length > longest {
			longest = st.Length
		}
	}

	s.persistStreaks(ctx, userID, state, longest, readErr == nil, now)

	return &models.StreakResponse{
		CurrentStreak: state.Current,
		StartDate:     state.StartDate,
		LongestStreak: longest,
	}, nil
}

// persistStreaks records the freshly computed current streak and the
// monotonically non-decreasing longest streak. Best effort; the response is
// served from the in-memory computation either way. When the stored longest
// could not be read, writeLongest is false and only the current record is
// written, so a transient read failure can never shrink the stored longest.
func (s *streakService) persistStreaks(ctx context.Context, userID string, state analytics.StreakState, longest int, writeLongest bool, now time.Time) {
	records := []*models.Streak{
		{
			UserID:    userID,
			Type:      models.StreakTypeCurrent,
			StartDate: state.StartDate,
			Length:    state.Current,
			IsActive:  state.Current > 0,
			UpdatedAt: now,
		},
	}
	if writeLongest {
		records = append(records, &models.Streak{
			UserID:    userID,
			Type:      models.StreakTypeLongest,
			Length:    longest,
			IsActive:  false,
			UpdatedAt: now,
		})
	}

	for _, rec := range records {
		if _, err := s.streakRepo.Upsert(ctx, rec); err != nil {
			logger.Ctx(ctx).Warn("failed to persist streak",
				logger.String("user_id", userID),
				logger.String("streak_type", string(rec.Type)),
				logger.Err(err))
		}
	}
}
