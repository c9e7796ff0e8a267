package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

func (s *Server) registerAnalysisRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "analyzeBookshelf",
		Method:      http.MethodPost,
		Path:        "/api/analyze-bookshelf",
		Summary:     "Analyze bookshelf photo",
		Description: "Runs AI analysis on a session's bookshelf photo and persists detected books, insights, and recommendations",
		Tags:        []string{"Analysis"},
	}, s.handleAnalyzeBookshelf)
}

// AnalyzeRequest is the request body for running an analysis.
type AnalyzeRequest struct {
	SessionID string `json:"sessionId" required:"false" doc:"Analysis session to populate"`
	ImageURL  string `json:"imageUrl" required:"false" doc:"CDN URL of the bookshelf photo"`
}

// AnalyzeInput is the Huma input for running an analysis.
type AnalyzeInput struct {
	Body AnalyzeRequest
}

// AnalyzeResponse summarizes what the analysis created.
type AnalyzeResponse struct {
	Success                bool `json:"success"`
	BooksDetected          int  `json:"books_detected"`
	InsightsCreated        int  `json:"insights_created"`
	RecommendationsCreated int  `json:"recommendations_created"`
}

// AnalyzeOutput is the Huma output for running an analysis.
type AnalyzeOutput struct {
	Body AnalyzeResponse
}

func (s *Server) handleAnalyzeBookshelf(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	if input.Body.SessionID == "" || input.Body.ImageURL == "" {
		return nil, huma.Error400BadRequest("Session ID and image URL are required")
	}

	result, err := s.analysisService.Analyze(ctx, input.Body.SessionID, input.Body.ImageURL)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrValidation) {
			return nil, huma.Error400BadRequest("invalid analysis request", err)
		}
		return nil, huma.Error500InternalServerError("analysis failed", err)
	}

	return &AnalyzeOutput{
		Body: AnalyzeResponse{
			Success:                true,
			BooksDetected:          result.BooksDetected,
			InsightsCreated:        result.InsightsCreated,
			RecommendationsCreated: result.RecommendationsCreated,
		},
	}, nil
}
