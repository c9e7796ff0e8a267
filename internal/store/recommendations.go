package store

import (
	"context"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

// newRecommendationMetadata is the write shape for book recommendations.
type newRecommendationMetadata struct {
	Session              string   `json:"session"`
	RecommendedBookTitle string   `json:"recommended_book_title"`
	Author               string   `json:"author"`
	RecommendationReason string   `json:"recommendation_reason"`
	Genres               []string `json:"genres"`
	AmazonURL            string   `json:"amazon_url"`
	CoverImageURL        string   `json:"cover_image_url"`
	BookDescription      string   `json:"book_description"`
	MatchScore           int      `json:"match_score"`
	BasedOnBooks         string   `json:"based_on_books"`
	RecommendationOrder  int      `json:"recommendation_order"`
}

// CreateRecommendationParams holds the fields for one recommendation record.
type CreateRecommendationParams struct {
	SessionID           string
	Title               string
	Author              string
	Reason              string
	GenreIDs            []string
	MatchScore          int
	BasedOnBooks        string
	CoverImageURL       string
	PurchaseURL         string
	Description         string
	RecommendationOrder int
}

// CreateRecommendation records a book recommendation against its session.
func (s *Store) CreateRecommendation(ctx context.Context, params CreateRecommendationParams) (*domain.BookRecommendation, error) {
	obj, err := cosmic.Insert[recommendationMetadata](ctx, s.client, cosmic.InsertRequest{
		Title: params.Title,
		Type:  typeRecommendations,
		Metadata: newRecommendationMetadata{
			Session:              params.SessionID,
			RecommendedBookTitle: params.Title,
			Author:               params.Author,
			RecommendationReason: params.Reason,
			Genres:               params.GenreIDs,
			AmazonURL:            params.PurchaseURL,
			CoverImageURL:        params.CoverImageURL,
			BookDescription:      params.Description,
			MatchScore:           params.MatchScore,
			BasedOnBooks:         params.BasedOnBooks,
			RecommendationOrder:  params.RecommendationOrder,
		},
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to create book recommendation")
	}

	rec := recommendationFromObject(obj)
	if rec.SessionID == "" {
		rec.SessionID = params.SessionID
	}
	return rec, nil
}

// RecommendationsBySession returns a session's recommendations in
// recommendation order.
func (s *Store) RecommendationsBySession(ctx context.Context, sessionID string) ([]*domain.BookRecommendation, error) {
	objects, err := cosmic.Find[recommendationMetadata](ctx, s.client, cosmic.Query{
		Type:   typeRecommendations,
		Filter: map[string]any{"metadata.session": sessionID},
		Depth:  1,
	})
	if err != nil {
		if domainerrors.Is(err, cosmic.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to fetch book recommendations")
	}

	recs := make([]*domain.BookRecommendation, 0, len(objects))
	for i := range objects {
		recs = append(recs, recommendationFromObject(&objects[i]))
	}
	domain.SortRecommendations(recs)
	return recs, nil
}
