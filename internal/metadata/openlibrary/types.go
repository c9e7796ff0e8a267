package openlibrary

// searchResponse is the raw Open Library search API response.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

// searchDoc is a single result document from the search API.
type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name,omitempty"`
	CoverID          int64    `json:"cover_i,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	ISBN             []string `json:"isbn,omitempty"`
}
