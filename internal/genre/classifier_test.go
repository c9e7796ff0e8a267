package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
)

func TestClassifyTitle_SingleMatch(t *testing.T) {
	got := ClassifyTitle("The Dragon Reborn")
	assert.Equal(t, []string{"fantasy"}, got)
}

func TestClassifyTitle_MultipleMatches(t *testing.T) {
	// "science" and "fiction" match science-fiction; "fiction" also
	// matches literary-fiction.
	got := ClassifyTitle("Great Works of Science Fiction")
	assert.Equal(t, []string{"science-fiction", "literary-fiction"}, got)
}

func TestClassifyTitle_CaseInsensitive(t *testing.T) {
	got := ClassifyTitle("MURDER ON THE ORIENT EXPRESS")
	assert.Equal(t, []string{"mystery"}, got)
}

func TestClassifyTitle_NoMatchDefaultsToLiteraryFiction(t *testing.T) {
	got := ClassifyTitle("The Old Man and the Sea")
	assert.Equal(t, []string{"literary-fiction"}, got)
}

func TestClassifyTitle_SubstringMatch(t *testing.T) {
	// "spy" appears as a literal substring.
	got := ClassifyTitle("The Spy Who Came In from the Cold")
	assert.Equal(t, []string{"thriller"}, got)
}

func referenceGenres() []*domain.GenreTag {
	return []*domain.GenreTag{
		{ID: "g-scifi", Name: "Science Fiction", Slug: "science-fiction"},
		{ID: "g-fantasy", Name: "Fantasy", Slug: "fantasy"},
		{ID: "g-mystery", Name: "Mystery", Slug: "mystery"},
		{ID: "g-thriller", Name: "Thriller", Slug: "thriller"},
		{ID: "g-litfic", Name: "Literary Fiction", Slug: "literary-fiction"},
	}
}

func TestClassifier_MatchIDs(t *testing.T) {
	c := NewClassifier(referenceGenres())

	ids := c.MatchIDs("A Wizard of Earthsea")
	assert.Equal(t, []string{"g-fantasy"}, ids)

	ids = c.MatchIDs("Plain Title")
	assert.Equal(t, []string{"g-litfic"}, ids)
}

func TestClassifier_UnknownSlugSilentlyDropped(t *testing.T) {
	// Reference list missing fantasy and literary-fiction.
	c := NewClassifier([]*domain.GenreTag{
		{ID: "g-mystery", Name: "Mystery", Slug: "mystery"},
	})

	assert.Empty(t, c.MatchIDs("A Wizard of Earthsea"))
	assert.Empty(t, c.MatchIDs("Plain Title"))
	assert.Equal(t, []string{"g-mystery"}, c.MatchIDs("The Detective"))
}

func TestClassifier_SlugDerivedFromName(t *testing.T) {
	// Tag without an explicit slug is indexed by its slugified name.
	c := NewClassifier([]*domain.GenreTag{
		{ID: "g-thriller", Name: "Thriller"},
	})

	assert.Equal(t, []string{"g-thriller"}, c.MatchIDs("A Suspense Story"))
}

func TestClassifier_MatchTags(t *testing.T) {
	c := NewClassifier(referenceGenres())

	tags := c.MatchTags("Murder in Space")
	require.Len(t, tags, 2)
	assert.Equal(t, "Science Fiction", tags[0].Name)
	assert.Equal(t, "Mystery", tags[1].Name)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Science Fiction", "science-fiction"},
		{"Sci-Fi/Fantasy", "sci-fi-fantasy"},
		{"  Thriller  ", "thriller"},
		{"Café Society", "cafe-society"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "input %q", tt.input)
	}
}
