package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfscanapp/shelfscan-server/internal/domain"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
)

//go:embed templates/*.html
var templates embed.FS

// landingPageData contains data for the landing page template.
type landingPageData struct {
	LatestSession *domain.AnalysisSession
}

// handleLandingPage serves the upload form with a card for the most recent
// scan, when one exists.
// GET /
func (s *Server) handleLandingPage(w http.ResponseWriter, r *http.Request) {
	data := landingPageData{}

	latest, err := s.sessionService.Latest(r.Context())
	if err != nil {
		// The upload form still works without the latest-session card.
		s.logger.Warn("failed to load latest session for landing page", logger.WithError(err))
	} else {
		data.LatestSession = latest
	}

	s.renderPage(w, "templates/index.html", http.StatusOK, data)
}

// resultsPageData contains data for the results page template.
type resultsPageData struct {
	Session         *domain.AnalysisSession
	Books           []*domain.DetectedBook
	Insights        []*domain.CollectionInsight
	Recommendations []*domain.BookRecommendation
}

// handleResultsPage serves the analysis results for one session.
// GET /sessions/{slug}
func (s *Server) handleResultsPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	results, err := s.sessionService.Results(r.Context(), slug)
	if err != nil {
		s.logger.Error("failed to load session results",
			logger.WithError(err),
			"slug", slug,
		)
		s.renderPage(w, "templates/error.html", http.StatusInternalServerError, nil)
		return
	}
	if results == nil {
		s.renderPage(w, "templates/not_found.html", http.StatusNotFound, nil)
		return
	}

	s.renderPage(w, "templates/results.html", http.StatusOK, resultsPageData{
		Session:         results.Session,
		Books:           results.Books,
		Insights:        results.Insights,
		Recommendations: results.Recommendations,
	})
}

// renderPage parses and executes one page template.
func (s *Server) renderPage(w http.ResponseWriter, name string, status int, data any) {
	tmpl, err := template.ParseFS(templates, name)
	if err != nil {
		s.logger.Error("failed to parse template",
			logger.WithError(err),
			"template", name,
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to execute template",
			logger.WithError(err),
			"template", name,
		)
	}
}
