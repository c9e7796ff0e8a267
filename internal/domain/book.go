package domain

// DetectedBook is a book identified by the vision model in a session's
// bookshelf photo. Each record references exactly one session, set at
// creation and never changed. Detected books are created once during
// analysis and never mutated.
type DetectedBook struct {
	ID              string     `json:"id"`
	SessionID       string     `json:"session_id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn,omitempty"`
	Genres          []GenreTag `json:"genres,omitempty"`
	ConfidenceScore int        `json:"confidence_score"` // 0-100
	CoverImageURL   string     `json:"cover_image_url,omitempty"`
	Description     string     `json:"description,omitempty"`
}
