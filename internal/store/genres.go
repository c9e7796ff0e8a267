package store

import (
	"context"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

// ListGenres returns every genre tag defined in the bucket. An empty bucket
// yields an empty slice, not an error; classification then falls back to
// keyword-only matching with no tag references.
func (s *Store) ListGenres(ctx context.Context) ([]*domain.GenreTag, error) {
	objects, err := cosmic.Find[genreMetadata](ctx, s.client, cosmic.Query{
		Type: typeGenreTags,
	})
	if err != nil {
		if domainerrors.Is(err, cosmic.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to fetch genre tags")
	}

	genres := make([]*domain.GenreTag, 0, len(objects))
	for i := range objects {
		genres = append(genres, genreFromObject(&objects[i]))
	}
	return genres, nil
}
