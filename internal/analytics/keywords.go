package analytics

import "strings"

// concernKeywords are phrases in mood text that warrant a critical-pattern
// flag regardless of the numeric statistics. Matching is case-insensitive
// substring search; mood text is used only for this heuristic, never for
// the statistical computations.
var concernKeywords = []string{
	"hopeless",
	"worthless",
	"no point",
	"can't go on",
	"give up",
	"desperate",
	"miserable",
	"breaking down",
	"can't cope",
	"burnt out",
}

func containsConcernKeywords(texts []string) bool {
	for _, text := range texts {
		normalized := strings.ToLower(strings.TrimSpace(text))
		if normalized == "" {
			continue
		}
		for _, kw := range concernKeywords {
			if strings.Contains(normalized, kw) {
				return true
			}
		}
	}
	return false
}
