package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnalysis = `{
  "detected_books": [
    {"title": "Dune", "author": "Frank Herbert", "isbn": "9780441013593", "confidence_score": 95},
    {"title": "The Hobbit", "author": "J.R.R. Tolkien", "isbn": null, "confidence_score": 88}
  ],
  "insights": [
    {"type": "genre_breakdown", "title": "Speculative Leanings", "description": "Mostly SF and fantasy."},
    {"type": "publication_era", "title": "Classics", "description": "Mid-century favorites."}
  ],
  "recommendations": [
    {"title": "Hyperion", "author": "Dan Simmons", "reason": "Pairs well with Dune.", "match_score": 92, "based_on_books": "Dune"}
  ]
}`

func TestParseAnalysis(t *testing.T) {
	analysis, err := ParseAnalysis(sampleAnalysis)
	require.NoError(t, err)

	require.Len(t, analysis.DetectedBooks, 2)
	assert.Equal(t, "Dune", analysis.DetectedBooks[0].Title)
	assert.Equal(t, 95, analysis.DetectedBooks[0].ConfidenceScore)
	// Null ISBN decodes to the empty string.
	assert.Empty(t, analysis.DetectedBooks[1].ISBN)

	require.Len(t, analysis.Insights, 2)
	assert.Equal(t, "genre_breakdown", analysis.Insights[0].Type)

	require.Len(t, analysis.Recommendations, 1)
	assert.Equal(t, 92, analysis.Recommendations[0].MatchScore)
	assert.Equal(t, "Dune", analysis.Recommendations[0].BasedOnBooks)
}

func TestParseAnalysis_StripsCodeFence(t *testing.T) {
	fenced := "```json\n" + sampleAnalysis + "\n```"

	analysis, err := ParseAnalysis(fenced)
	require.NoError(t, err)
	assert.Len(t, analysis.DetectedBooks, 2)
}

func TestParseAnalysis_BareFence(t *testing.T) {
	fenced := "```\n{\"detected_books\":[],\"insights\":[],\"recommendations\":[]}\n```"

	analysis, err := ParseAnalysis(fenced)
	require.NoError(t, err)
	assert.Empty(t, analysis.DetectedBooks)
}

func TestParseAnalysis_NonJSONIsHardFailure(t *testing.T) {
	_, err := ParseAnalysis("I could not identify any books in this image.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AI response format")
}
