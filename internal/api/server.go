// Package api provides the HTTP API server and handlers for the ShelfScan application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfscanapp/shelfscan-server/internal/ratelimit"
	"github.com/shelfscanapp/shelfscan-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	uploadService   *service.UploadService
	sessionService  *service.SessionService
	analysisService *service.AnalysisService
	router          *chi.Mux
	api             huma.API
	limiter         *ratelimit.KeyedRateLimiter
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(uploadService *service.UploadService, sessionService *service.SessionService, analysisService *service.AnalysisService, logger *slog.Logger) *Server {
	s := &Server{
		uploadService:   uploadService,
		sessionService:  sessionService,
		analysisService: analysisService,
		router:          chi.NewRouter(),
		limiter:         ratelimit.New(expensiveRPS, expensiveBurst),
		logger:          logger,
	}

	s.setupMiddleware()

	config := huma.DefaultConfig("ShelfScan API", "1.0.0")
	config.DocsPath = "/api/docs"
	RegisterErrorHandler()
	s.api = humachi.New(s.router, config)

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(s.rateLimitExpensive)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()

	// Upload uses chi directly for multipart form handling.
	s.router.Post("/api/upload-image", s.handleUploadImage)

	s.registerSessionRoutes()
	s.registerAnalysisRoutes()

	// Server-rendered pages.
	s.router.Get("/", s.handleLandingPage)
	s.router.Get("/sessions/{slug}", s.handleResultsPage)
}
