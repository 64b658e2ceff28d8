package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/moodline/backend/internal/analytics"
	"github.com/moodline/backend/internal/logger"
	"github.com/moodline/backend/internal/models"
	"github.com/moodline/backend/internal/repository"
)

const (
	// analysisWindowDays bounds how far back the engine looks.
	analysisWindowDays = 30

	// defaultEnrichmentTimeout caps how long a single external
	// classification may hold up an analysis request when no timeout is
	// configured.
	defaultEnrichmentTimeout = 10 * time.Second

	// snapshotTTL is how long a persisted snapshot may be served in place
	// of a fresh analysis run. Writes to the entry store invalidate
	// snapshots, so a hit within the TTL reflects the current data.
	snapshotTTL = 15 * time.Minute
)

// AnalysisResponse is the full analysis payload returned to clients. The
// statistical result is always present; Enrichment is set only when the
// caller opted in and the external call succeeded.
type AnalysisResponse struct {
	*analytics.Result
	GeneratedAt time.Time         `json:"generatedAt"`
	Enrichment  *EnrichmentResult `json:"enrichment,omitempty"`
}

type analysisService struct {
	entryRepo     repository.MoodEntryRepository
	snapshotRepo  repository.SnapshotRepository
	enricher      Enricher
	enrichTimeout time.Duration
	now           func() time.Time
}

// NewAnalysisService creates a new analysis service. enricher may be nil,
// in which case enrich requests fall back to the statistical result.
// enrichTimeout bounds each external classification; zero or negative
// values fall back to defaultEnrichmentTimeout.
func NewAnalysisService(entryRepo repository.MoodEntryRepository, snapshotRepo repository.SnapshotRepository, enricher Enricher, enrichTimeout time.Duration) AnalysisService {
	if enrichTimeout <= 0 {
		enrichTimeout = defaultEnrichmentTimeout
	}
	return &analysisService{
		entryRepo:     entryRepo,
		snapshotRepo:  snapshotRepo,
		enricher:      enricher,
		enrichTimeout: enrichTimeout,
		now:           time.Now,
	}
}

func (s *analysisService) GetAnalysis(ctx context.Context, userID string, enrich bool) (*AnalysisResponse, error) {
	now := s.now().UTC()

	// Enriched requests always run fresh since snapshots never carry an
	// enrichment
	if !enrich {
		if cached := s.cachedAnalysis(ctx, userID, now); cached != nil {
			return cached, nil
		}
	}

	start := now.AddDate(0, 0, -analysisWindowDays)

	entries, err := s.entryRepo.GetByUserIDAndDateRange(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}

	result := analytics.Analyze(entries, now)

	resp := &AnalysisResponse{
		Result:      result,
		GeneratedAt: now,
	}

	// The snapshot is written before any enrichment override so cached
	// reads and the audit trail only ever hold the statistical result.
	s.persistSnapshot(ctx, userID, resp, now)

	if enrich && s.enricher != nil && len(entries) > 0 {
		resp.Enrichment = s.enrichInsights(ctx, entries, result)
	}

	return resp, nil
}

// cachedAnalysis returns the latest persisted snapshot when it is still
// within the TTL, or nil to force a fresh run.
func (s *analysisService) cachedAnalysis(ctx context.Context, userID string, now time.Time) *AnalysisResponse {
	snapshot, err := s.snapshotRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		logger.Ctx(ctx).Warn("failed to load analysis snapshot", logger.Err(err))
		return nil
	}
	if snapshot == nil || now.Sub(snapshot.GeneratedAt) > snapshotTTL {
		return nil
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(snapshot.Result, &resp); err != nil {
		logger.Ctx(ctx).Warn("failed to decode analysis snapshot", logger.Err(err))
		return nil
	}
	if resp.Result == nil {
		return nil
	}
	return &resp
}

func (s *analysisService) GetRecommendations(ctx context.Context, userID string) ([]string, error) {
	analysis, err := s.GetAnalysis(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return analysis.Recommendations, nil
}

// MoodSummary is the all-time mood distribution for a user.
type MoodSummary struct {
	TotalEntries int64                      `json:"totalEntries"`
	Counts       map[models.MoodState]int64 `json:"counts"`
}

func (s *analysisService) GetSummary(ctx context.Context, userID string) (*MoodSummary, error) {
	counts, err := s.entryRepo.CountByMood(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &MoodSummary{
		Counts: map[models.MoodState]int64{
			models.MoodHappy:    0,
			models.MoodSad:      0,
			models.MoodStressed: 0,
		},
	}
	for state, n := range counts {
		if !state.Valid() {
			continue
		}
		summary.Counts[state] = n
		summary.TotalEntries += n
	}

	return summary, nil
}

// enrichInsights runs the external classifier with a hard timeout. On any
// failure the statistical result stands untouched and nil is returned; the
// classifier may only override dominantMood and riskLevel, and only when its
// reported confidence clears the threshold.
func (s *analysisService) enrichInsights(ctx context.Context, entries []models.MoodEntry, result *analytics.Result) *EnrichmentResult {
	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()

	enrichment, err := s.enricher.Classify(enrichCtx, entries, result)
	if err != nil {
		logger.Ctx(ctx).Warn("enrichment failed, returning statistical analysis",
			logger.Err(err))
		return nil
	}

	if enrichment.Confidence >= EnrichmentConfidenceThreshold {
		result.Insights.DominantMood = enrichment.DominantMood
		result.Insights.RiskLevel = enrichment.RiskLevel
		enrichment.Applied = true
	}

	return enrichment
}

// persistSnapshot stores the analysis for later retrieval. Persistence is
// best effort; a storage failure never fails the analysis request.
func (s *analysisService) persistSnapshot(ctx context.Context, userID string, resp *AnalysisResponse, now time.Time) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logger.Ctx(ctx).Warn("failed to encode analysis snapshot", logger.Err(err))
		return
	}

	id, err := uuid.NewV7()
	if err != nil {
		logger.Ctx(ctx).Warn("failed to generate snapshot id", logger.Err(err))
		return
	}

	snapshot := &models.AnalysisSnapshot{
		ID:          id.String(),
		UserID:      userID,
		Result:      raw,
		GeneratedAt: now,
	}
	if _, err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		logger.Ctx(ctx).Warn("failed to persist analysis snapshot",
			logger.String("user_id", userID),
			logger.Err(err))
	}
}
