package store

import (
	"context"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

// newSessionMetadata is the write shape for session creation. File and
// select fields are written as plain strings; the bucket expands them on
// read.
type newSessionMetadata struct {
	UploadedImage      string                  `json:"uploaded_image"`
	UserID             string                  `json:"user_id"`
	Status             string                  `json:"ai_analysis_status"`
	TotalBooksDetected int                     `json:"total_books_detected"`
	AnalysisMetadata   domain.AnalysisMetadata `json:"analysis_metadata"`
	BlurHash           string                  `json:"blur_hash"`
}

// CreateSessionParams holds the fields set at session creation.
type CreateSessionParams struct {
	Title     string
	MediaName string // Media name of the uploaded bookshelf photo
	UserID    string
	BlurHash  string
}

// CreateSession creates a new analysis session in Pending state.
func (s *Store) CreateSession(ctx context.Context, params CreateSessionParams) (*domain.AnalysisSession, error) {
	obj, err := cosmic.Insert[sessionMetadata](ctx, s.client, cosmic.InsertRequest{
		Title: params.Title,
		Type:  typeSessions,
		Metadata: newSessionMetadata{
			UploadedImage:      params.MediaName,
			UserID:             params.UserID,
			Status:             string(domain.StatusPending),
			TotalBooksDetected: 0,
			AnalysisMetadata:   domain.AnalysisMetadata{},
			BlurHash:           params.BlurHash,
		},
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to create analysis session")
	}

	s.logger.Info("session created",
		"session_id", obj.ID,
		"slug", obj.Slug,
	)

	return sessionFromObject(obj), nil
}

// AllSessions returns every analysis session, newest first.
func (s *Store) AllSessions(ctx context.Context) ([]*domain.AnalysisSession, error) {
	objects, err := cosmic.Find[sessionMetadata](ctx, s.client, cosmic.Query{
		Type:  typeSessions,
		Depth: 1,
	})
	if err != nil {
		if domainerrors.Is(err, cosmic.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to fetch analysis sessions")
	}

	sessions := make([]*domain.AnalysisSession, 0, len(objects))
	for i := range objects {
		sessions = append(sessions, sessionFromObject(&objects[i]))
	}
	domain.SortSessionsNewestFirst(sessions)
	return sessions, nil
}

// LatestSession returns the most recently created session, or nil when the
// bucket has none.
func (s *Store) LatestSession(ctx context.Context) (*domain.AnalysisSession, error) {
	sessions, err := s.AllSessions(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return sessions[0], nil
}

// SessionBySlug returns the session with the given slug, or nil when no
// such session exists.
func (s *Store) SessionBySlug(ctx context.Context, slug string) (*domain.AnalysisSession, error) {
	obj, err := cosmic.FindOne[sessionMetadata](ctx, s.client, cosmic.Query{
		Type:   typeSessions,
		Filter: map[string]any{"slug": slug},
		Depth:  1,
	})
	if err != nil {
		if domainerrors.Is(err, cosmic.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to fetch analysis session")
	}
	return sessionFromObject(obj), nil
}

// SessionByID returns the session with the given object ID, or nil when no
// such session exists.
func (s *Store) SessionByID(ctx context.Context, id string) (*domain.AnalysisSession, error) {
	obj, err := cosmic.FindOne[sessionMetadata](ctx, s.client, cosmic.Query{
		Type:   typeSessions,
		Filter: map[string]any{"id": id},
		Depth:  1,
	})
	if err != nil {
		if domainerrors.Is(err, cosmic.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to fetch analysis session")
	}
	return sessionFromObject(obj), nil
}

// UpdateSessionStatus sets the session's analysis status.
func (s *Store) UpdateSessionStatus(ctx context.Context, sessionID string, status domain.AnalysisStatus) error {
	err := s.client.UpdateMetadata(ctx, sessionID, map[string]any{
		"ai_analysis_status": string(status),
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to update session status")
	}

	s.logger.Info("session status updated",
		"session_id", sessionID,
		"status", status,
	)
	return nil
}

// CompleteSession records the final analysis outcome: Completed status,
// detected book count, and processing metadata.
func (s *Store) CompleteSession(ctx context.Context, sessionID string, totalBooks int, meta domain.AnalysisMetadata) error {
	err := s.client.UpdateMetadata(ctx, sessionID, map[string]any{
		"ai_analysis_status":   string(domain.StatusCompleted),
		"total_books_detected": totalBooks,
		"analysis_metadata":    meta,
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to complete session")
	}

	s.logger.Info("session completed",
		"session_id", sessionID,
		"total_books", totalBooks,
	)
	return nil
}
