package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	"github.com/shelfscanapp/shelfscan-server/internal/errors"
	"github.com/shelfscanapp/shelfscan-server/internal/genre"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
	"github.com/shelfscanapp/shelfscan-server/internal/openai"
	"github.com/shelfscanapp/shelfscan-server/internal/store"
)

// Defaults applied when the model omits a field.
const (
	defaultConfidenceScore = 85
	defaultMatchScore      = 85
	defaultInsightType     = domain.InsightGenreBreakdown
)

// Values recorded in the session's analysis metadata on completion.
const (
	confidenceThreshold = 75
	imageResolution     = "1920x1080"
	detectionMethod     = "spine_text_recognition"
)

// VisionClient analyzes a bookshelf photo and returns the model's raw text
// response.
type VisionClient interface {
	AnalyzeBookshelf(ctx context.Context, imageURL string) (string, error)
	Model() string
}

// CoverFetcher resolves a cover image URL for a title/author pair. It never
// fails: lookup errors yield a placeholder URL.
type CoverFetcher interface {
	CoverURL(ctx context.Context, title, author string) string
}

// AnalysisService runs the bookshelf analysis pipeline: vision call, genre
// classification, cover lookup, and persistence of all derived records.
type AnalysisService struct {
	store  *store.Store
	vision VisionClient
	covers CoverFetcher
	logger *slog.Logger
	now    func() time.Time
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(store *store.Store, vision VisionClient, covers CoverFetcher, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		store:  store,
		vision: vision,
		covers: covers,
		logger: logger,
		now:    time.Now,
	}
}

// AnalysisResult summarizes what one analysis run created.
type AnalysisResult struct {
	BooksDetected          int `json:"books_detected"`
	InsightsCreated        int `json:"insights_created"`
	RecommendationsCreated int `json:"recommendations_created"`
}

// Analyze runs the full analysis pipeline for a session. The session ID is
// captured at entry so the failure path can always mark the right session
// Failed, even when the error happens mid-pipeline. Child records already
// created before a failure are not rolled back.
func (s *AnalysisService) Analyze(ctx context.Context, sessionID, imageURL string) (*AnalysisResult, error) {
	if sessionID == "" {
		return nil, errors.Validation("Session ID and image URL are required")
	}
	if imageURL == "" {
		return nil, errors.Validation("Session ID and image URL are required")
	}

	result, err := s.analyze(ctx, sessionID, imageURL)
	if err != nil {
		s.markFailed(ctx, sessionID)
		return nil, err
	}
	return result, nil
}

func (s *AnalysisService) analyze(ctx context.Context, sessionID, imageURL string) (*AnalysisResult, error) {
	if err := s.store.UpdateSessionStatus(ctx, sessionID, domain.StatusProcessing); err != nil {
		return nil, err
	}

	started := s.now()

	s.logger.Info("analysis started",
		"session_id", sessionID,
		"model", s.vision.Model(),
	)

	content, err := s.vision.AnalyzeBookshelf(ctx, imageURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstream, "AI analysis failed")
	}

	analysis, err := openai.ParseAnalysis(content)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstream, "invalid AI response format")
	}

	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	classifier := genre.NewClassifier(genres)

	result := &AnalysisResult{}

	for _, book := range analysis.DetectedBooks {
		confidence := book.ConfidenceScore
		if confidence == 0 {
			confidence = defaultConfidenceScore
		}

		_, err := s.store.CreateBook(ctx, store.CreateBookParams{
			SessionID:       sessionID,
			Title:           book.Title,
			Author:          book.Author,
			ISBN:            book.ISBN,
			GenreIDs:        classifier.MatchIDs(book.Title),
			ConfidenceScore: confidence,
			CoverImageURL:   s.covers.CoverURL(ctx, book.Title, book.Author),
			Description:     fmt.Sprintf("A book from your collection: %s by %s", book.Title, book.Author),
		})
		if err != nil {
			return nil, err
		}
		result.BooksDetected++
	}

	for i, insight := range analysis.Insights {
		insightType := insight.Type
		if insightType == "" {
			insightType = defaultInsightType
		}

		_, err := s.store.CreateInsight(ctx, store.CreateInsightParams{
			SessionID:    sessionID,
			Type:         insightType,
			Title:        insight.Title,
			Description:  insight.Description,
			DisplayOrder: i + 1,
		})
		if err != nil {
			return nil, err
		}
		result.InsightsCreated++
	}

	for i, rec := range analysis.Recommendations {
		matchScore := rec.MatchScore
		if matchScore == 0 {
			matchScore = defaultMatchScore
		}

		_, err := s.store.CreateRecommendation(ctx, store.CreateRecommendationParams{
			SessionID:           sessionID,
			Title:               rec.Title,
			Author:              rec.Author,
			Reason:              rec.Reason,
			GenreIDs:            classifier.MatchIDs(rec.Title),
			MatchScore:          matchScore,
			BasedOnBooks:        rec.BasedOnBooks,
			CoverImageURL:       s.covers.CoverURL(ctx, rec.Title, rec.Author),
			Description:         rec.Reason,
			RecommendationOrder: i + 1,
		})
		if err != nil {
			return nil, err
		}
		result.RecommendationsCreated++
	}

	err = s.store.CompleteSession(ctx, sessionID, result.BooksDetected, domain.AnalysisMetadata{
		ProcessingTimeMs:    s.now().Sub(started).Milliseconds(),
		AIModel:             s.vision.Model(),
		ConfidenceThreshold: confidenceThreshold,
		ImageResolution:     imageResolution,
		DetectionMethod:     detectionMethod,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("analysis completed",
		"session_id", sessionID,
		"books", result.BooksDetected,
		"insights", result.InsightsCreated,
		"recommendations", result.RecommendationsCreated,
	)

	return result, nil
}

// markFailed sets the session's status to Failed. Best effort: a failure to
// record the failure is logged and swallowed so the original error reaches
// the caller.
func (s *AnalysisService) markFailed(ctx context.Context, sessionID string) {
	if err := s.store.UpdateSessionStatus(ctx, sessionID, domain.StatusFailed); err != nil {
		s.logger.Error("failed to mark session as failed",
			logger.WithError(err),
			"session_id", sessionID,
		)
	}
}
