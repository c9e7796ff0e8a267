package domain

import (
	"sort"
	"time"
)

// UploadedImage references the bookshelf photo stored in the content store's
// media library.
type UploadedImage struct {
	Name     string `json:"name,omitempty"`      // Media name in the content store
	URL      string `json:"url,omitempty"`       // Direct URL
	ImgixURL string `json:"imgix_url,omitempty"` // CDN URL used for AI analysis and display
}

// AnalysisMetadata captures processing details recorded when an analysis
// finishes.
type AnalysisMetadata struct {
	ProcessingTimeMs    int64  `json:"processing_time_ms"`
	AIModel             string `json:"ai_model"`
	ConfidenceThreshold int    `json:"confidence_threshold"`
	ImageResolution     string `json:"image_resolution"`
	DetectionMethod     string `json:"detection_method"`
}

// AnalysisSession is one user-initiated bookshelf-photo analysis run.
// Created once per upload with status Pending, then mutated exactly twice:
// status to Processing when analysis starts, and a final update with counts
// and metadata when it completes (or status Failed on error).
type AnalysisSession struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	CreatedAt          time.Time        `json:"created_at"`
	UploadedImage      UploadedImage    `json:"uploaded_image"`
	UserID             string           `json:"user_id"`
	Status             AnalysisStatus   `json:"ai_analysis_status"`
	TotalBooksDetected int              `json:"total_books_detected"`
	Metadata           AnalysisMetadata `json:"analysis_metadata"`
	BlurHash           string           `json:"blur_hash,omitempty"` // Placeholder hash of the uploaded photo
}

// SortSessionsNewestFirst orders sessions by creation time, descending.
// The content store returns sessions in arbitrary order, so callers that
// want "latest" must sort.
func SortSessionsNewestFirst(sessions []*AnalysisSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}
