package openai

import (
	"encoding/json/v2"
	"fmt"
	"strings"
)

// Analysis is the parsed result of a bookshelf analysis.
type Analysis struct {
	DetectedBooks   []DetectedBook   `json:"detected_books"`
	Insights        []Insight        `json:"insights"`
	Recommendations []Recommendation `json:"recommendations"`
}

// DetectedBook is one book the model identified on the shelf.
type DetectedBook struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	ConfidenceScore int    `json:"confidence_score"`
}

// Insight is one observation about the detected collection.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recommendation is one suggested title with its rationale.
type Recommendation struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Reason       string `json:"reason"`
	MatchScore   int    `json:"match_score"`
	BasedOnBooks string `json:"based_on_books"`
}

// ParseAnalysis decodes the model's text response into an Analysis.
// Models occasionally wrap the JSON in a markdown code fence despite the
// prompt; the fence is stripped before decoding. Any other deviation from
// valid JSON is a hard failure.
func ParseAnalysis(content string) (*Analysis, error) {
	content = stripCodeFence(content)

	var analysis Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("invalid AI response format: %w", err)
	}

	return &analysis, nil
}

// stripCodeFence removes a surrounding ```json ... ``` or ``` ... ``` fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
