package domain

import "sort"

// orderLast is the sort key assigned to records missing an explicit order
// value, so they always sort after ordered records.
const orderLast = 999

// Well-known insight categories. The enumeration is open-ended: the AI may
// return other values, and unknown values are kept as-is.
const (
	InsightGenreBreakdown   = "genre_breakdown"
	InsightReadingLevel     = "reading_level"
	InsightPublicationEra   = "publication_era"
	InsightAuthorDiversity  = "author_diversity"
	InsightSeriesCollection = "series_collection"
)

// ChartSpec is an optional visualization attached to an insight.
type ChartSpec struct {
	ChartType string             `json:"chart_type,omitempty"` // e.g. "pie", "bar"
	Data      map[string]float64 `json:"data,omitempty"`       // label -> numeric value
	Colors    []string           `json:"colors,omitempty"`
}

// CollectionInsight is a derived observation about a session's detected
// books. Insights are created once during analysis, tagged with the session,
// and never mutated.
type CollectionInsight struct {
	ID           string     `json:"id"`
	SessionID    string     `json:"session_id"`
	Type         string     `json:"insight_type"`
	Title        string     `json:"insight_title"`
	Description  string     `json:"insight_description"`
	Chart        *ChartSpec `json:"data_visualization,omitempty"`
	DisplayOrder int        `json:"display_order"` // 1-based; 0 means unset
}

// SortInsights orders insights ascending by display order. A missing
// (zero) order sorts last.
func SortInsights(insights []*CollectionInsight) {
	sort.SliceStable(insights, func(i, j int) bool {
		return orderKey(insights[i].DisplayOrder) < orderKey(insights[j].DisplayOrder)
	})
}

func orderKey(order int) int {
	if order <= 0 {
		return orderLast
	}
	return order
}
