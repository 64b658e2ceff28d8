package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moodline/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCreateEntry_GeneratesUUIDv7WhenIDEmpty(t *testing.T) {
	var captured *models.MoodEntry
	repo := &mockMoodEntryRepo{
		createFn: func(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
			captured = entry
			return entry, nil
		},
	}
	svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

	req := &models.CreateMoodEntryRequest{
		MoodState: models.MoodHappy,
		Timestamp: time.Now().Add(-time.Hour),
	}
	created, err := svc.CreateEntry(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}

	if captured == nil {
		t.Fatal("repository Create was not called")
	}
	parsed, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("generated ID %q is not a UUID: %v", created.ID, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("generated ID version = %d, want 7", parsed.Version())
	}
	if created.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", created.UserID)
	}
}

func TestCreateEntry_AcceptsClientUUIDv7(t *testing.T) {
	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("uuid.NewV7() error = %v", err)
	}
	svc := NewMoodEntryService(&mockMoodEntryRepo{}, &mockSnapshotRepo{})

	req := &models.CreateMoodEntryRequest{
		ID:        id.String(),
		MoodState: models.MoodSad,
		Timestamp: time.Now(),
	}
	created, err := svc.CreateEntry(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if created.ID != id.String() {
		t.Errorf("ID = %q, want client-supplied %q", created.ID, id.String())
	}
}

func TestCreateEntry_RejectsNonV7ID(t *testing.T) {
	svc := NewMoodEntryService(&mockMoodEntryRepo{}, &mockSnapshotRepo{})

	req := &models.CreateMoodEntryRequest{
		ID:        uuid.New().String(), // v4
		MoodState: models.MoodHappy,
		Timestamp: time.Now(),
	}
	if _, err := svc.CreateEntry(context.Background(), "user-1", req); !errors.Is(err, ErrNotUUIDv7) {
		t.Errorf("CreateEntry() error = %v, want ErrNotUUIDv7", err)
	}
}

func TestCreateEntry_RejectsInvalidMoodState(t *testing.T) {
	svc := NewMoodEntryService(&mockMoodEntryRepo{}, &mockSnapshotRepo{})

	req := &models.CreateMoodEntryRequest{
		MoodState: models.MoodState("ecstatic"),
		Timestamp: time.Now(),
	}
	if _, err := svc.CreateEntry(context.Background(), "user-1", req); !errors.Is(err, ErrInvalidMoodState) {
		t.Errorf("CreateEntry() error = %v, want ErrInvalidMoodState", err)
	}
}

func TestCreateEntry_RejectsFutureTimestamp(t *testing.T) {
	svc := NewMoodEntryService(&mockMoodEntryRepo{}, &mockSnapshotRepo{})

	req := &models.CreateMoodEntryRequest{
		MoodState: models.MoodHappy,
		Timestamp: time.Now().Add(5 * time.Minute),
	}
	if _, err := svc.CreateEntry(context.Background(), "user-1", req); !errors.Is(err, ErrTimestampInFuture) {
		t.Errorf("CreateEntry() error = %v, want ErrTimestampInFuture", err)
	}
}

func TestCreateEntry_AllowsSmallClockSkew(t *testing.T) {
	svc := NewMoodEntryService(&mockMoodEntryRepo{}, &mockSnapshotRepo{})

	req := &models.CreateMoodEntryRequest{
		MoodState: models.MoodStressed,
		Timestamp: time.Now().Add(30 * time.Second),
	}
	if _, err := svc.CreateEntry(context.Background(), "user-1", req); err != nil {
		t.Errorf("CreateEntry() error = %v, want nil for 30s skew", err)
	}
}

func TestGetEntry_ForeignEntryReportedNotFound(t *testing.T) {
	repo := &mockMoodEntryRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MoodEntry, error) {
			return &models.MoodEntry{ID: id, UserID: "someone-else"}, nil
		},
	}
	svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

	if _, err := svc.GetEntry(context.Background(), "user-1", "entry-1"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrEntryNotFound", err)
	}
}

func TestGetEntry_MissingEntry(t *testing.T) {
	svc := NewMoodEntryService(&mockMoodEntryRepo{}, &mockSnapshotRepo{})

	if _, err := svc.GetEntry(context.Background(), "user-1", "entry-1"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrEntryNotFound", err)
	}
}

func TestGetUserEntries_ClampsLimit(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults applied", 0, 0, 50, 0},
		{"negative offset reset", 20, -5, 20, 0},
		{"oversized limit reset", 500, 10, 50, 10},
		{"valid passthrough", 100, 25, 100, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			repo := &mockMoodEntryRepo{
				getByUserIDFn: func(ctx context.Context, userID string, limit, offset int) ([]models.MoodEntry, error) {
					gotLimit, gotOffset = limit, offset
					return nil, nil
				},
			}
			svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

			if _, err := svc.GetUserEntries(context.Background(), "user-1", tt.limit, tt.offset); err != nil {
				t.Fatalf("GetUserEntries() error = %v", err)
			}
			if gotLimit != tt.wantLimit || gotOffset != tt.wantOffset {
				t.Errorf("repo called with (limit=%d, offset=%d), want (%d, %d)",
					gotLimit, gotOffset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestUpdateEntry_PatchesOnlyProvidedFields(t *testing.T) {
	existing := &models.MoodEntry{ID: "entry-1", UserID: "user-1", MoodState: models.MoodHappy}
	var patch *models.MoodEntry
	repo := &mockMoodEntryRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MoodEntry, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error) {
			patch = entry
			return entry, nil
		},
	}
	svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

	sad := models.MoodSad
	req := &models.UpdateMoodEntryRequest{MoodState: &sad}
	if _, err := svc.UpdateEntry(context.Background(), "user-1", "entry-1", req); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}

	if patch.MoodState != models.MoodSad {
		t.Errorf("patch MoodState = %q, want sad", patch.MoodState)
	}
	if patch.MoodText != nil {
		t.Errorf("patch MoodText = %v, want nil for omitted field", patch.MoodText)
	}
	if !patch.Timestamp.IsZero() {
		t.Errorf("patch Timestamp = %v, want zero for omitted field", patch.Timestamp)
	}
}

func TestUpdateEntry_NullMoodTextClears(t *testing.T) {
	existing := &models.MoodEntry{ID: "entry-1", UserID: "user-1", MoodText: strPtr("old note")}
	var patch *models.MoodEntry
	repo := &mockMoodEntryRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MoodEntry, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, id string, entry *models.MoodEntry) (*models.MoodEntry, error) {
			patch = entry
			return entry, nil
		},
	}
	svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

	req := &models.UpdateMoodEntryRequest{}
	req.MoodText.Set = true
	req.MoodText.Value = ""
	if _, err := svc.UpdateEntry(context.Background(), "user-1", "entry-1", req); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}

	if patch.MoodText == nil || *patch.MoodText != "" {
		t.Errorf("patch MoodText = %v, want pointer to empty string", patch.MoodText)
	}
}

func TestUpdateEntry_RejectsInvalidMoodState(t *testing.T) {
	repo := &mockMoodEntryRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MoodEntry, error) {
			return &models.MoodEntry{ID: id, UserID: "user-1"}, nil
		},
	}
	svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

	bad := models.MoodState("furious")
	req := &models.UpdateMoodEntryRequest{MoodState: &bad}
	if _, err := svc.UpdateEntry(context.Background(), "user-1", "entry-1", req); !errors.Is(err, ErrInvalidMoodState) {
		t.Errorf("UpdateEntry() error = %v, want ErrInvalidMoodState", err)
	}
}

func TestDeleteEntry_ChecksOwnershipFirst(t *testing.T) {
	deleted := false
	repo := &mockMoodEntryRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MoodEntry, error) {
			return &models.MoodEntry{ID: id, UserID: "someone-else"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

	if err := svc.DeleteEntry(context.Background(), "user-1", "entry-1"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("DeleteEntry() error = %v, want ErrEntryNotFound", err)
	}
	if deleted {
		t.Error("Delete was called for a foreign entry")
	}
}

func TestEntryWritesInvalidateSnapshots(t *testing.T) {
	invalidated := 0
	snapshotRepo := &mockSnapshotRepo{
		deleteByUserIDFn: func(ctx context.Context, userID string) error {
			if userID != "user-1" {
				t.Errorf("invalidated snapshots for %q, want user-1", userID)
			}
			invalidated++
			return nil
		},
	}
	repo := &mockMoodEntryRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MoodEntry, error) {
			return &models.MoodEntry{ID: id, UserID: "user-1"}, nil
		},
	}
	svc := NewMoodEntryService(repo, snapshotRepo)

	createReq := &models.CreateMoodEntryRequest{
		MoodState: models.MoodHappy,
		Timestamp: time.Now(),
	}
	if _, err := svc.CreateEntry(context.Background(), "user-1", createReq); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}
	if _, err := svc.UpdateEntry(context.Background(), "user-1", "entry-1", &models.UpdateMoodEntryRequest{}); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}
	if err := svc.DeleteEntry(context.Background(), "user-1", "entry-1"); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}

	if invalidated != 3 {
		t.Errorf("snapshots invalidated %d times, want once per write (3)", invalidated)
	}
}

func TestDeleteEntry_PropagatesRepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	repo := &mockMoodEntryRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.MoodEntry, error) {
			return &models.MoodEntry{ID: id, UserID: "user-1"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			return repoErr
		},
	}
	svc := NewMoodEntryService(repo, &mockSnapshotRepo{})

	if err := svc.DeleteEntry(context.Background(), "user-1", "entry-1"); !errors.Is(err, repoErr) {
		t.Errorf("DeleteEntry() error = %v, want wrapped repo error", err)
	}
}
