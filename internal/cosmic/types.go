package cosmic

import (
	"encoding/json/v2"
	"errors"
	"time"
)

// ErrNotFound is returned when the bucket has no objects matching a query.
// Callers generally treat this as an empty result rather than a failure.
var ErrNotFound = errors.New("cosmic: not found")

// Object is a typed Cosmic object envelope. M is the object-type-specific
// metadata shape.
type Object[M any] struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Metadata  M         `json:"metadata"`
}

// objectsResponse is the collection envelope returned by the objects endpoint.
type objectsResponse[M any] struct {
	Objects []Object[M] `json:"objects"`
	Total   int         `json:"total"`
}

// objectResponse is the single-object envelope returned by writes.
type objectResponse[M any] struct {
	Object Object[M] `json:"object"`
}

// Media is an entry in the bucket's media library.
type Media struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// mediaResponse is the envelope returned by the media upload endpoint.
type mediaResponse struct {
	Media Media `json:"media"`
}

// apiError is the error body the Cosmic API returns for non-2xx responses.
type apiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// SelectValue is Cosmic's select-dropdown metafield representation. Values
// are written as plain strings but read back as {key, value} pairs, so the
// decoder accepts both forms.
type SelectValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UnmarshalJSON accepts either a bare string or a {key, value} object.
func (s *SelectValue) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Key = str
		s.Value = str
		return nil
	}

	type selectValue SelectValue
	var v selectValue
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SelectValue(v)
	return nil
}

// Ref is an object-reference metafield. References are written as ID
// strings but read back expanded to full objects when depth > 0, so the
// decoder accepts both forms.
type Ref struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// UnmarshalJSON accepts either a bare ID string or an expanded object.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		r.ID = str
		return nil
	}

	type ref Ref
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ref(v)
	return nil
}
