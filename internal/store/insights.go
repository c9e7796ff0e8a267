package store

import (
	"context"

	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	domainerrors "github.com/shelfscanapp/shelfscan-server/internal/errors"
)

// newInsightMetadata is the write shape for collection insights.
type newInsightMetadata struct {
	Session            string            `json:"session"`
	InsightType        string            `json:"insight_type"`
	InsightTitle       string            `json:"insight_title"`
	InsightDescription string            `json:"insight_description"`
	DataVisualization  *domain.ChartSpec `json:"data_visualization,omitempty"`
	DisplayOrder       int               `json:"display_order"`
}

// CreateInsightParams holds the fields for one collection-insight record.
type CreateInsightParams struct {
	SessionID    string
	Type         string
	Title        string
	Description  string
	Chart        *domain.ChartSpec
	DisplayOrder int
}

// CreateInsight records a collection insight against its session.
func (s *Store) CreateInsight(ctx context.Context, params CreateInsightParams) (*domain.CollectionInsight, error) {
	obj, err := cosmic.Insert[insightMetadata](ctx, s.client, cosmic.InsertRequest{
		Title: params.Title,
		Type:  typeInsights,
		Metadata: newInsightMetadata{
			Session:            params.SessionID,
			InsightType:        params.Type,
			InsightTitle:       params.Title,
			InsightDescription: params.Description,
			DataVisualization:  params.Chart,
			DisplayOrder:       params.DisplayOrder,
		},
	})
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to create collection insight")
	}

	insight := insightFromObject(obj)
	if insight.SessionID == "" {
		insight.SessionID = params.SessionID
	}
	return insight, nil
}

// InsightsBySession returns a session's insights in display order.
func (s *Store) InsightsBySession(ctx context.Context, sessionID string) ([]*domain.CollectionInsight, error) {
	objects, err := cosmic.Find[insightMetadata](ctx, s.client, cosmic.Query{
		Type:   typeInsights,
		Filter: map[string]any{"metadata.session": sessionID},
	})
	if err != nil {
		if domainerrors.Is(err, cosmic.ErrNotFound) {
			return nil, nil
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeUpstream, "Failed to fetch collection insights")
	}

	insights := make([]*domain.CollectionInsight, 0, len(objects))
	for i := range objects {
		insights = append(insights, insightFromObject(&objects[i]))
	}
	domain.SortInsights(insights)
	return insights, nil
}
