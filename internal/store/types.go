package store

import (
	"encoding/json/v2"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/domain"
)

// fileValue is a file metafield. Files are written as media-name strings but
// read back expanded to {url, imgix_url}, so the decoder accepts both forms.
type fileValue struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// UnmarshalJSON accepts either a bare media name or an expanded file object.
func (f *fileValue) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		f.Name = str
		return nil
	}

	type file fileValue
	var v file
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = fileValue(v)
	return nil
}

// genreRef is a genre-tag reference. Written as an ID string, read back
// expanded with metadata when depth > 0.
type genreRef struct {
	ID       string        `json:"id"`
	Slug     string        `json:"slug"`
	Title    string        `json:"title"`
	Metadata genreMetadata `json:"metadata"`
}

// UnmarshalJSON accepts either a bare ID string or an expanded object.
func (g *genreRef) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		g.ID = str
		return nil
	}

	type ref genreRef
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g = genreRef(v)
	return nil
}

// Metadata shapes per object type.

type sessionMetadata struct {
	UploadedImage      fileValue               `json:"uploaded_image"`
	UserID             string                  `json:"user_id"`
	Status             cosmic.SelectValue      `json:"ai_analysis_status"`
	TotalBooksDetected int                     `json:"total_books_detected"`
	AnalysisMetadata   domain.AnalysisMetadata `json:"analysis_metadata"`
	BlurHash           string                  `json:"blur_hash"`
}

type genreMetadata struct {
	GenreName        string `json:"genre_name"`
	GenreDescription string `json:"genre_description"`
	ColorCode        string `json:"color_code"`
}

type bookMetadata struct {
	Session         cosmic.Ref `json:"session"`
	BookTitle       string     `json:"book_title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	Genres          []genreRef `json:"genres"`
	ConfidenceScore int        `json:"confidence_score"`
	CoverImageURL   string     `json:"cover_image_url"`
	BookDescription string     `json:"book_description"`
}

type insightMetadata struct {
	Session            cosmic.Ref         `json:"session"`
	InsightType        cosmic.SelectValue `json:"insight_type"`
	InsightTitle       string             `json:"insight_title"`
	InsightDescription string             `json:"insight_description"`
	DataVisualization  *domain.ChartSpec  `json:"data_visualization"`
	DisplayOrder       int                `json:"display_order"`
}

type recommendationMetadata struct {
	Session              cosmic.Ref `json:"session"`
	RecommendedBookTitle string     `json:"recommended_book_title"`
	Author               string     `json:"author"`
	RecommendationReason string     `json:"recommendation_reason"`
	Genres               []genreRef `json:"genres"`
	AmazonURL            string     `json:"amazon_url"`
	CoverImageURL        string     `json:"cover_image_url"`
	BookDescription      string     `json:"book_description"`
	MatchScore           int        `json:"match_score"`
	BasedOnBooks         string     `json:"based_on_books"`
	RecommendationOrder  int        `json:"recommendation_order"`
}

// Converters from store envelopes to domain entities.

func sessionFromObject(obj *cosmic.Object[sessionMetadata]) *domain.AnalysisSession {
	return &domain.AnalysisSession{
		ID:        obj.ID,
		Title:     obj.Title,
		Slug:      obj.Slug,
		CreatedAt: obj.CreatedAt,
		UploadedImage: domain.UploadedImage{
			Name:     obj.Metadata.UploadedImage.Name,
			URL:      obj.Metadata.UploadedImage.URL,
			ImgixURL: obj.Metadata.UploadedImage.ImgixURL,
		},
		UserID:             obj.Metadata.UserID,
		Status:             domain.ParseAnalysisStatus(obj.Metadata.Status.Key),
		TotalBooksDetected: obj.Metadata.TotalBooksDetected,
		Metadata:           obj.Metadata.AnalysisMetadata,
		BlurHash:           obj.Metadata.BlurHash,
	}
}

func genreFromObject(obj *cosmic.Object[genreMetadata]) *domain.GenreTag {
	name := obj.Metadata.GenreName
	if name == "" {
		name = obj.Title
	}
	return &domain.GenreTag{
		ID:          obj.ID,
		Name:        name,
		Slug:        obj.Slug,
		Description: obj.Metadata.GenreDescription,
		ColorCode:   obj.Metadata.ColorCode,
	}
}

func genreTagsFromRefs(refs []genreRef) []domain.GenreTag {
	if len(refs) == 0 {
		return nil
	}
	tags := make([]domain.GenreTag, 0, len(refs))
	for _, r := range refs {
		name := r.Metadata.GenreName
		if name == "" {
			name = r.Title
		}
		tags = append(tags, domain.GenreTag{
			ID:          r.ID,
			Name:        name,
			Slug:        r.Slug,
			Description: r.Metadata.GenreDescription,
			ColorCode:   r.Metadata.ColorCode,
		})
	}
	return tags
}

func bookFromObject(obj *cosmic.Object[bookMetadata]) *domain.DetectedBook {
	return &domain.DetectedBook{
		ID:              obj.ID,
		SessionID:       obj.Metadata.Session.ID,
		Title:           obj.Metadata.BookTitle,
		Author:          obj.Metadata.Author,
		ISBN:            obj.Metadata.ISBN,
		Genres:          genreTagsFromRefs(obj.Metadata.Genres),
		ConfidenceScore: obj.Metadata.ConfidenceScore,
		CoverImageURL:   obj.Metadata.CoverImageURL,
		Description:     obj.Metadata.BookDescription,
	}
}

func insightFromObject(obj *cosmic.Object[insightMetadata]) *domain.CollectionInsight {
	return &domain.CollectionInsight{
		ID:           obj.ID,
		SessionID:    obj.Metadata.Session.ID,
		Type:         obj.Metadata.InsightType.Key,
		Title:        obj.Metadata.InsightTitle,
		Description:  obj.Metadata.InsightDescription,
		Chart:        obj.Metadata.DataVisualization,
		DisplayOrder: obj.Metadata.DisplayOrder,
	}
}

func recommendationFromObject(obj *cosmic.Object[recommendationMetadata]) *domain.BookRecommendation {
	return &domain.BookRecommendation{
		ID:                  obj.ID,
		SessionID:           obj.Metadata.Session.ID,
		Title:               obj.Metadata.RecommendedBookTitle,
		Author:              obj.Metadata.Author,
		Reason:              obj.Metadata.RecommendationReason,
		Genres:              genreTagsFromRefs(obj.Metadata.Genres),
		MatchScore:          obj.Metadata.MatchScore,
		BasedOnBooks:        obj.Metadata.BasedOnBooks,
		CoverImageURL:       obj.Metadata.CoverImageURL,
		PurchaseURL:         obj.Metadata.AmazonURL,
		RecommendationOrder: obj.Metadata.RecommendationOrder,
	}
}
