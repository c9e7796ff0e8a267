package domain

// GenreTag is a reference taxonomy tag attachable to detected books and
// recommendations. Genre tags are read-only reference data seeded in the
// content store; this application never creates or mutates them.
type GenreTag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`                  // Display name: "Science Fiction"
	Slug        string `json:"slug"`                  // URL-safe key: "science-fiction"
	Description string `json:"description,omitempty"` // Optional description
	ColorCode   string `json:"color_code,omitempty"`  // Hex color for UI badges
}
