package analytics

import "fmt"

// Risk levels
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Classification thresholds. The chain is order-sensitive: the first
// matching (highest-severity) branch wins.
const (
	highConsecutiveSadDays   = 7
	highSadFraction          = 0.7
	mediumConsecutiveSadDays = 3
	mediumSadFraction        = 0.4
	mediumStressedFraction   = 0.6
)

// Critical-pattern thresholds. These flags are independent of each other
// and of the risk level.
const (
	criticalConsecutiveSadDays = 5
	criticalStressedFraction   = 0.5
	criticalStabilityFloor     = 0.3
	minEntriesForAnalysis      = 7
)

// InsufficientDataFlag is the critical-pattern flag emitted when there are
// too few entries to trust the analysis.
const InsufficientDataFlag = "Insufficient data for analysis"

// ClassifyRisk maps mood statistics to a coarse triage level. This is a
// pure if/else-if chain, not a diagnosis.
func ClassifyRisk(consecutiveSadDays int, sadFraction, stressedFraction float64) string {
	switch {
	case consecutiveSadDays >= highConsecutiveSadDays || sadFraction > highSadFraction:
		return RiskHigh
	case consecutiveSadDays >= mediumConsecutiveSadDays ||
		sadFraction > mediumSadFraction ||
		stressedFraction > mediumStressedFraction:
		return RiskMedium
	default:
		return RiskLow
	}
}

// CriticalPatterns collects human-readable warning flags from the computed
// statistics. Flags are appended in a fixed order so output is deterministic.
func CriticalPatterns(consecutiveSadDays int, stressedFraction, stability float64, totalEntries int, moodTexts []string) []string {
	flags := make([]string, 0, 4)

	if consecutiveSadDays >= criticalConsecutiveSadDays {
		flags = append(flags, fmt.Sprintf("Prolonged sadness: %d consecutive days", consecutiveSadDays))
	}
	if stressedFraction > criticalStressedFraction {
		flags = append(flags, "High stress levels detected")
	}
	if totalEntries >= 2 && stability < criticalStabilityFloor {
		flags = append(flags, "Significant mood instability")
	}
	if containsConcernKeywords(moodTexts) {
		flags = append(flags, "Concerning language in mood notes")
	}
	if totalEntries < minEntriesForAnalysis {
		flags = append(flags, InsufficientDataFlag)
	}

	return flags
}
