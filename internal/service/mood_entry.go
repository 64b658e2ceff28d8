package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moodline/backend/internal/logger"
	"github.com/moodline/backend/internal/models"
	"github.com/moodline/backend/internal/repository"
)

var (
	// ErrEntryNotFound indicates the entry does not exist or belongs to
	// another user
	ErrEntryNotFound = errors.New("mood entry not found")
	// ErrInvalidMoodState indicates a mood state outside the three-value enum
	ErrInvalidMoodState = errors.New("invalid mood state")
	// ErrTimestampInFuture indicates an entry timestamp beyond the allowed skew
	ErrTimestampInFuture = errors.New("timestamp is too far in the future")
)

type moodEntryService struct {
	entryRepo    repository.MoodEntryRepository
	snapshotRepo repository.SnapshotRepository
}

// NewMoodEntryService creates a new mood entry service. Writes invalidate
// the user's persisted analysis snapshots so cached analyses never serve
// data the user has since changed.
func NewMoodEntryService(entryRepo repository.MoodEntryRepository, snapshotRepo repository.SnapshotRepository) MoodEntryService {
	return &moodEntryService{
		entryRepo:    entryRepo,
		snapshotRepo: snapshotRepo,
	}
}

func (s *moodEntryService) CreateEntry(ctx context.Context, userID string, req *models.CreateMoodEntryRequest) (*models.MoodEntry, error) {
	if !req.MoodState.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMoodState, req.MoodState)
	}
	if err := validateTimestamp(req.Timestamp); err != nil {
		return nil, err
	}

	// Clients may generate their own UUIDv7 so entries created offline keep
	// a stable identity across retries
	id := req.ID
	if id == "" {
		generated, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate entry id: %w", err)
		}
		id = generated.String()
	} else if err := ValidateUUIDv7(id); err != nil {
		return nil, err
	}

	entry := &models.MoodEntry{
		ID:        id,
		UserID:    userID,
		MoodState: req.MoodState,
		Timestamp: req.Timestamp,
		MoodText:  req.MoodText,
		Sentiment: req.Sentiment,
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	s.invalidateSnapshots(ctx, userID)

	return created, nil
}

func (s *moodEntryService) GetEntry(ctx context.Context, userID, entryID string) (*models.MoodEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}

	// A foreign entry is reported as not found rather than forbidden so the
	// API does not leak entry existence across users
	if entry == nil || entry.UserID != userID {
		return nil, ErrEntryNotFound
	}

	return entry, nil
}

func (s *moodEntryService) GetUserEntries(ctx context.Context, userID string, limit, offset int) ([]models.MoodEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.entryRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	return entries, nil
}

func (s *moodEntryService) UpdateEntry(ctx context.Context, userID, entryID string, req *models.UpdateMoodEntryRequest) (*models.MoodEntry, error) {
	existing, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	patch := &models.MoodEntry{}

	if req.MoodState != nil {
		if !req.MoodState.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMoodState, *req.MoodState)
		}
		patch.MoodState = *req.MoodState
	}
	if req.Timestamp != nil {
		if err := validateTimestamp(*req.Timestamp); err != nil {
			return nil, err
		}
		patch.Timestamp = *req.Timestamp
	}
	if req.MoodText.Set {
		// Explicit null clears the text; the repository maps the empty
		// string to a database null
		text := req.MoodText.Value
		patch.MoodText = &text
	}
	if req.Sentiment != nil {
		patch.Sentiment = req.Sentiment
	}

	updated, err := s.entryRepo.Update(ctx, existing.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update mood entry: %w", err)
	}

	s.invalidateSnapshots(ctx, userID)

	return updated, nil
}

func (s *moodEntryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if _, err := s.GetEntry(ctx, userID, entryID); err != nil {
		return err
	}

	if err := s.entryRepo.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}

	s.invalidateSnapshots(ctx, userID)

	return nil
}

// invalidateSnapshots drops persisted analyses after an entry write. Best
// effort; a stale snapshot also ages out via its TTL.
func (s *moodEntryService) invalidateSnapshots(ctx context.Context, userID string) {
	if err := s.snapshotRepo.DeleteByUserID(ctx, userID); err != nil {
		logger.Ctx(ctx).Warn("failed to invalidate analysis snapshots",
			logger.String("user_id", userID),
			logger.Err(err))
	}
}

// validateTimestamp rejects timestamps more than a minute in the future.
// Small skew is allowed for client clock drift.
func validateTimestamp(ts time.Time) error {
	if ts.After(time.Now().Add(time.Minute)) {
		return ErrTimestampInFuture
	}
	return nil
}
