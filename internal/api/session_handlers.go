package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	"github.com/shelfscanapp/shelfscan-server/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createSession",
		Method:      http.MethodPost,
		Path:        "/api/create-session",
		Summary:     "Create analysis session",
		Description: "Creates a new bookshelf analysis session for an uploaded photo",
		Tags:        []string{"Sessions"},
	}, s.handleCreateSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSessions",
		Method:      http.MethodGet,
		Path:        "/api/sessions",
		Summary:     "List analysis sessions",
		Description: "Returns all analysis sessions, newest first",
		Tags:        []string{"Sessions"},
	}, s.handleListSessions)
}

// CreateSessionRequest is the request body for creating a session.
type CreateSessionRequest struct {
	MediaName string `json:"mediaName" required:"false" doc:"Media name of the uploaded bookshelf photo"`
	UserID    string `json:"userId,omitempty" required:"false" doc:"Owner; an anonymous user is generated when omitted"`
	BlurHash  string `json:"blurHash,omitempty" required:"false" doc:"Blurhash placeholder computed at upload"`
}

// CreateSessionInput is the Huma input for creating a session.
type CreateSessionInput struct {
	Body CreateSessionRequest
}

// SessionResponse wraps a created session.
type SessionResponse struct {
	Session *domain.AnalysisSession `json:"session"`
}

// CreateSessionOutput is the Huma output for creating a session.
type CreateSessionOutput struct {
	Body SessionResponse
}

func (s *Server) handleCreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	session, err := s.sessionService.Create(ctx, service.CreateSessionRequest{
		MediaName: input.Body.MediaName,
		UserID:    input.Body.UserID,
		BlurHash:  input.Body.BlurHash,
	})
	if err != nil {
		return nil, huma.Error400BadRequest("failed to create session", err)
	}

	return &CreateSessionOutput{
		Body: SessionResponse{Session: session},
	}, nil
}

// SessionListResponse contains all sessions.
type SessionListResponse struct {
	Sessions []*domain.AnalysisSession `json:"sessions"`
	Total    int                       `json:"total"`
}

// SessionListOutput is the Huma output for listing sessions.
type SessionListOutput struct {
	Body SessionListResponse
}

func (s *Server) handleListSessions(ctx context.Context, _ *struct{}) (*SessionListOutput, error) {
	sessions, err := s.sessionService.All(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list sessions", err)
	}

	return &SessionListOutput{
		Body: SessionListResponse{
			Sessions: sessions,
			Total:    len(sessions),
		},
	}, nil
}
