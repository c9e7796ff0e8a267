// Package service contains the application's business logic, orchestrating
// the content store, vision model, and metadata clients.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	"github.com/shelfscanapp/shelfscan-server/internal/errors"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
	"github.com/shelfscanapp/shelfscan-server/internal/media/images"
	"github.com/shelfscanapp/shelfscan-server/internal/store"
)

// MaxUploadSize is the default cap on bookshelf photo uploads.
const MaxUploadSize = 10 * 1024 * 1024 // 10MB

// UploadService handles bookshelf photo uploads.
type UploadService struct {
	store   *store.Store
	logger  *slog.Logger
	maxSize int64
}

// NewUploadService creates a new upload service. A non-positive maxSize
// falls back to the default limit.
func NewUploadService(store *store.Store, maxSize int64, logger *slog.Logger) *UploadService {
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	return &UploadService{
		store:   store,
		logger:  logger,
		maxSize: maxSize,
	}
}

// UploadResult is a stored photo plus its computed blurhash.
type UploadResult struct {
	Media    domain.UploadedImage
	BlurHash string
}

// Upload validates and stores a bookshelf photo in the media library.
// The blurhash is best effort: an undecodable image still uploads, it just
// renders without a blurred placeholder.
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, data []byte) (*UploadResult, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.Validation("Please select an image file")
	}
	if int64(len(data)) > s.maxSize {
		return nil, errors.Validation("File size must be less than 10MB")
	}
	if len(data) == 0 {
		return nil, errors.Validation("Please select an image file")
	}

	media, err := s.store.UploadImage(ctx, filename, contentType, data)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{Media: *media}

	hash, err := images.ComputeBlurHash(data)
	if err != nil {
		s.logger.Warn("blurhash computation failed",
			logger.WithError(err),
			"filename", filename,
		)
	} else {
		result.BlurHash = hash
	}

	return result, nil
}
