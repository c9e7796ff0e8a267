// Package store provides typed read/write accessors over the Cosmic content
// store for analysis sessions and their child records.
//
// Reads tolerate "not found" as an empty result (nil or empty slice) rather
// than an error; any other failure surfaces as an upstream domain error.
package store

import (
	"log/slog"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
)

// Content store object type slugs.
const (
	typeSessions        = "book-analysis-sessions"
	typeGenreTags       = "genre-tags"
	typeDetectedBooks   = "detected-books"
	typeInsights        = "collection-insights"
	typeRecommendations = "book-recommendations"
)

// uploadFolder is the media library folder for bookshelf photos.
const uploadFolder = "bookshelf-uploads"

// Store wraps the bucket client with typed accessors.
type Store struct {
	client *cosmic.Client
	logger *slog.Logger
}

// New creates a new store over the given bucket client.
func New(client *cosmic.Client, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
	}
}
