package store

import (
	"context"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

// UploadImage stores a bookshelf photo in the media library and returns its
// media entry. The imgix URL is what the vision model and the results pages
// load.
func (s *Store) UploadImage(ctx context.Context, filename, contentType string, data []byte) (*domain.UploadedImage, error) {
	media, err := s.client.UploadMedia(ctx, cosmic.UploadParams{
		Filename:    filename,
		ContentType: contentType,
		Folder:      uploadFolder,
		Data:        data,
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to upload image")
	}

	s.logger.Info("image uploaded",
		"media_name", media.Name,
		"size_bytes", len(data),
	)

	return &domain.UploadedImage{
		Name:     media.Name,
		URL:      media.URL,
		ImgixURL: media.ImgixURL,
	}, nil
}
