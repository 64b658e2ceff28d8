package models

import (
	"encoding/json"
	"time"
)

// AnalysisSnapshot is a persisted copy of an analysis result. It serves as
// a historical audit record and doubles as a short-lived cache, so entry
// writes must invalidate a user's snapshots. The result payload is stored
// as raw JSON so the persistence layer stays decoupled from the analytics
// package.
type AnalysisSnapshot struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Result      json.RawMessage `json:"result"`
	GeneratedAt time.Time       `json:"generated_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
