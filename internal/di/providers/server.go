package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/shelfscanapp/shelfscan-server/internal/api"
	"github.com/shelfscanapp/shelfscan-server/internal/config"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
	"github.com/shelfscanapp/shelfscan-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	uploadService := do.MustInvoke[*service.UploadService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	analysisService := do.MustInvoke[*service.AnalysisService](i)

	handler := api.NewServer(uploadService, sessionService, analysisService, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
