package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/moodline/backend/internal/analytics"
	"github.com/moodline/backend/internal/models"
)

// EnrichmentConfidenceThreshold is the minimum reported confidence for an
// external classification to override a statistical field.
const EnrichmentConfidenceThreshold = 0.8

// EnrichmentResult is the outcome of an external AI classification pass.
// Applied is true only when the confidence cleared the override threshold
// and the statistical insights were adjusted.
type EnrichmentResult struct {
	Provider     string           `json:"provider"`
	DominantMood models.MoodState `json:"dominantMood,omitempty"`
	RiskLevel    string           `json:"riskLevel,omitempty"`
	Confidence   float64          `json:"confidence"`
	Insight      string           `json:"insight,omitempty"`
	Applied      bool             `json:"applied"`
}

// Enricher classifies a user's recent mood history with an external model.
// Implementations must honor ctx cancellation; the analysis service bounds
// every call with a timeout and degrades to the statistical result on error.
type Enricher interface {
	Classify(ctx context.Context, entries []models.MoodEntry, statistical *analytics.Result) (*EnrichmentResult, error)
}

type openAIEnricher struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIEnricher creates an Enricher backed by the OpenAI chat
// completions API.
func NewOpenAIEnricher(apiKey, model string) Enricher {
	return &openAIEnricher{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
	}
}

type openAIChatRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIClassification struct {
	DominantMood string  `json:"dominant_mood"`
	RiskLevel    string  `json:"risk_level"`
	Confidence   float64 `json:"confidence"`
	Insight      string  `json:"insight"`
}

const enrichmentSystemPrompt = "You are a mood-pattern classifier. Given a summary of a user's recent mood entries and a statistical analysis, respond with JSON only (no markdown, no code fences): " +
	`{"dominant_mood": one of ["happy","sad","stressed"], "risk_level": one of ["low","medium","high"], "confidence": 0.0-1.0, "insight": "one short supportive sentence"}. ` +
	"Base your answer on the overall emotional tone, not on isolated entries."

func (e *openAIEnricher) Classify(ctx context.Context, entries []models.MoodEntry, statistical *analytics.Result) (*EnrichmentResult, error) {
	reqBody := openAIChatRequest{
		Model: e.model,
		Messages: []openAIMessage{
			{Role: "system", Content: enrichmentSystemPrompt},
			{Role: "user", Content: buildEnrichmentPrompt(entries, statistical)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrichment call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment call returned status %d", resp.StatusCode)
	}

	var chatResp openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("enrichment response contained no choices")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	// Some models wrap JSON in code fences despite instructions
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	var classification openAIClassification
	if err := json.Unmarshal([]byte(content), &classification); err != nil {
		return nil, fmt.Errorf("failed to parse classification: %w", err)
	}

	mood := models.MoodState(classification.DominantMood)
	if !mood.Valid() {
		return nil, fmt.Errorf("classification returned unknown mood %q", classification.DominantMood)
	}
	switch classification.RiskLevel {
	case analytics.RiskLow, analytics.RiskMedium, analytics.RiskHigh:
	default:
		return nil, fmt.Errorf("classification returned unknown risk level %q", classification.RiskLevel)
	}
	if classification.Confidence < 0 {
		classification.Confidence = 0
	}
	if classification.Confidence > 1 {
		classification.Confidence = 1
	}

	return &EnrichmentResult{
		Provider:     "openai",
		DominantMood: mood,
		RiskLevel:    classification.RiskLevel,
		Confidence:   classification.Confidence,
		Insight:      classification.Insight,
	}, nil
}

// buildEnrichmentPrompt summarizes the window for the model without sending
// raw mood text verbatim beyond a bounded number of recent notes.
func buildEnrichmentPrompt(entries []models.MoodEntry, statistical *analytics.Result) string {
	var b strings.Builder

	counts := make(map[models.MoodState]int, 3)
	for _, e := range entries {
		counts[e.MoodState]++
	}
	fmt.Fprintf(&b, "Entries in window: %d (happy=%d, sad=%d, stressed=%d)\n",
		len(entries), counts[models.MoodHappy], counts[models.MoodSad], counts[models.MoodStressed])
	fmt.Fprintf(&b, "Statistical analysis: dominantMood=%s riskLevel=%s trend=%s stability=%.2f\n",
		statistical.Insights.DominantMood, statistical.Insights.RiskLevel,
		statistical.Insights.TrendDirection, statistical.Insights.MoodStability)

	notes := 0
	for i := len(entries) - 1; i >= 0 && notes < 5; i-- {
		if entries[i].MoodText == nil || *entries[i].MoodText == "" {
			continue
		}
		fmt.Fprintf(&b, "Note (%s): %s\n", entries[i].MoodState, *entries[i].MoodText)
		notes++
	}

	return b.String()
}
