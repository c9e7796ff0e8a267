package domain

import "sort"

// BookRecommendation is a suggested title derived from a session's detected
// collection, with a rationale and match score. Recommendations are created
// once during analysis, tagged with the session, and never mutated.
type BookRecommendation struct {
	ID                  string     `json:"id"`
	SessionID           string     `json:"session_id"`
	Title               string     `json:"title"`
	Author              string     `json:"author"`
	Reason              string     `json:"recommendation_reason"`
	Genres              []GenreTag `json:"genres,omitempty"`
	MatchScore          int        `json:"match_score"` // 0-100
	BasedOnBooks        string     `json:"based_on_books,omitempty"`
	CoverImageURL       string     `json:"cover_image_url,omitempty"`
	PurchaseURL         string     `json:"purchase_url,omitempty"`
	RecommendationOrder int        `json:"recommendation_order"` // 1-based; 0 means unset
}

// SortRecommendations orders recommendations ascending by recommendation
// order. A missing (zero) order sorts last.
func SortRecommendations(recs []*BookRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return orderKey(recs[i].RecommendationOrder) < orderKey(recs[j].RecommendationOrder)
	})
}
