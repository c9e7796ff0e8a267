package store

import (
	"context"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

// newBookMetadata is the write shape for detected books. The session and
// genre references are written as object IDs.
type newBookMetadata struct {
	Session         string   `json:"session"`
	BookTitle       string   `json:"book_title"`
	Author          string   `json:"author"`
	ISBN            string   `json:"isbn"`
	Genres          []string `json:"genres"`
	ConfidenceScore int      `json:"confidence_score"`
	CoverImageURL   string   `json:"cover_image_url"`
	BookDescription string   `json:"book_description"`
}

// CreateBookParams holds the fields for one detected-book record.
type CreateBookParams struct {
	SessionID       string
	Title           string
	Author          string
	ISBN            string
	GenreIDs        []string
	ConfidenceScore int
	CoverImageURL   string
	Description     string
}

// CreateBook records a detected book against its session.
func (s *Store) CreateBook(ctx context.Context, params CreateBookParams) (*domain.DetectedBook, error) {
	obj, err := cosmic.Insert[bookMetadata](ctx, s.client, cosmic.InsertRequest{
		Title: params.Title,
		Type:  typeDetectedBooks,
		Metadata: newBookMetadata{
			Session:         params.SessionID,
			BookTitle:       params.Title,
			Author:          params.Author,
			ISBN:            params.ISBN,
			Genres:          params.GenreIDs,
			ConfidenceScore: params.ConfidenceScore,
			CoverImageURL:   params.CoverImageURL,
			BookDescription: params.Description,
		},
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to create detected book")
	}

	book := bookFromObject(obj)
	if book.SessionID == "" {
		book.SessionID = params.SessionID
	}
	return book, nil
}

// BooksBySession returns the detected books for a session.
func (s *Store) BooksBySession(ctx context.Context, sessionID string) ([]*domain.DetectedBook, error) {
	objects, err := cosmic.Find[bookMetadata](ctx, s.client, cosmic.Query{
		Type:   typeDetectedBooks,
		Filter: map[string]any{"metadata.session": sessionID},
		Depth:  1,
	})
	if err != nil {
		if domainerrors.Is(err, cosmic.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to fetch detected books")
	}

	books := make([]*domain.DetectedBook, 0, len(objects))
	for i := range objects {
		books = append(books, bookFromObject(&objects[i]))
	}
	return books, nil
}
