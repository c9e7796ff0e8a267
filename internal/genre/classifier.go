package genre

import (
	"strings"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
)

// defaultSlug is assigned when no keyword matches a title.
const defaultSlug = "literary-fiction"

// keywordTable maps genre slugs to the title keywords that select them.
// A data-driven table rather than branching logic so the mapping stays
// independently testable.
var keywordTable = map[string][]string{
	"science-fiction":  {"science", "fiction", "sci-fi", "space", "future"},
	"fantasy":          {"fantasy", "magic", "dragon", "wizard"},
	"mystery":          {"mystery", "detective", "crime", "murder"},
	"thriller":         {"thriller", "suspense", "spy"},
	"literary-fiction": {"literary", "contemporary", "fiction"},
}

// slugOrder fixes the iteration order over keywordTable so classification
// output is deterministic.
var slugOrder = []string{
	"science-fiction",
	"fantasy",
	"mystery",
	"thriller",
	"literary-fiction",
}

// ClassifyTitle returns the genre slugs whose keywords appear in the title
// as lower-cased literal substrings. Multiple genres may match. A title
// matching nothing maps to exactly {literary-fiction}.
func ClassifyTitle(title string) []string {
	lower := strings.ToLower(title)

	var matched []string
	for _, slug := range slugOrder {
		for _, keyword := range keywordTable[slug] {
			if strings.Contains(lower, keyword) {
				matched = append(matched, slug)
				break
			}
		}
	}

	if len(matched) == 0 {
		matched = append(matched, defaultSlug)
	}

	return matched
}

// Classifier resolves keyword matches against the genre reference list
// fetched from the content store.
type Classifier struct {
	bySlug map[string]*domain.GenreTag
}

// NewClassifier builds a classifier over the fetched genre tags. Tags
// without a slug are indexed under a slug derived from their name.
func NewClassifier(genres []*domain.GenreTag) *Classifier {
	bySlug := make(map[string]*domain.GenreTag, len(genres))
	for _, g := range genres {
		slug := g.Slug
		if slug == "" {
			slug = Slugify(g.Name)
		}
		bySlug[slug] = g
	}
	return &Classifier{bySlug: bySlug}
}

// MatchIDs classifies a title and maps the matched slugs to genre tag IDs.
// Slugs absent from the reference list silently produce no match, so the
// result may be empty when the store's taxonomy lacks the matched genres.
func (c *Classifier) MatchIDs(title string) []string {
	var ids []string
	for _, slug := range ClassifyTitle(title) {
		if g, ok := c.bySlug[slug]; ok {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

// MatchTags is like MatchIDs but returns the full genre tags.
func (c *Classifier) MatchTags(title string) []domain.GenreTag {
	var tags []domain.GenreTag
	for _, slug := range ClassifyTitle(title) {
		if g, ok := c.bySlug[slug]; ok {
			tags = append(tags, *g)
		}
	}
	return tags
}
