package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	"github.com/shelfscanapp/shelfscan-server/internal/id"
	"github.com/shelfscanapp/shelfscan-server/internal/store"
	"github.com/shelfscanapp/shelfscan-server/internal/validation"
)

// SessionService orchestrates analysis session operations.
type SessionService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
	now       func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(store *store.Store, logger *slog.Logger) *SessionService {
	return &SessionService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
		now:       time.Now,
	}
}

// CreateSessionRequest contains fields for creating an analysis session.
type CreateSessionRequest struct {
	MediaName string `json:"mediaName" validate:"required"`
	UserID    string `json:"userId"`
	BlurHash  string `json:"blurHash"`
}

// Create creates a new analysis session in Pending state. When no user ID
// is supplied the session is owned by a generated anonymous user.
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*domain.AnalysisSession, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	userID := req.UserID
	if userID == "" {
		userID = id.MustGenerate("user")
	}

	title := fmt.Sprintf("Bookshelf Scan - %s", s.now().Format("January 2, 2006"))

	return s.store.CreateSession(ctx, store.CreateSessionParams{
		Title:     title,
		MediaName: req.MediaName,
		UserID:    userID,
		BlurHash:  req.BlurHash,
	})
}

// All returns every analysis session, newest first.
func (s *SessionService) All(ctx context.Context) ([]*domain.AnalysisSession, error) {
	return s.store.AllSessions(ctx)
}

// Latest returns the most recent session, or nil when none exist.
func (s *SessionService) Latest(ctx context.Context) (*domain.AnalysisSession, error) {
	return s.store.LatestSession(ctx)
}

// BySlug returns the session with the given slug, or nil when it does not
// exist.
func (s *SessionService) BySlug(ctx context.Context, slug string) (*domain.AnalysisSession, error) {
	return s.store.SessionBySlug(ctx, slug)
}

// SessionResults aggregates a session with all of its child records for
// the results page.
type SessionResults struct {
	Session         *domain.AnalysisSession
	Books           []*domain.DetectedBook
	Insights        []*domain.CollectionInsight
	Recommendations []*domain.BookRecommendation
}

// Results loads a session by slug together with its detected books,
// insights, and recommendations. Returns nil when the slug is unknown.
func (s *SessionService) Results(ctx context.Context, slug string) (*SessionResults, error) {
	session, err := s.store.SessionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	books, err := s.store.BooksBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	insights, err := s.store.InsightsBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	recs, err := s.store.RecommendationsBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &SessionResults{
		Session:         session,
		Books:           books,
		Insights:        insights,
		Recommendations: recs,
	}, nil
}
