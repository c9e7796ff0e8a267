package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfscanapp/shelfscan-server/internal/config"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
	"github.com/shelfscanapp/shelfscan-server/internal/service"
	"github.com/shelfscanapp/shelfscan-server/internal/store"
)

// ProvideUploadService provides the photo upload service.
func ProvideUploadService(i do.Injector) (*service.UploadService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUploadService(st, cfg.Upload.MaxSizeBytes, log.Logger), nil
}

// ProvideSessionService provides the analysis session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(st, log.Logger), nil
}

// ProvideAnalysisService provides the bookshelf analysis service.
func ProvideAnalysisService(i do.Injector) (*service.AnalysisService, error) {
	st := do.MustInvoke[*store.Store](i)
	openaiHandle := do.MustInvoke[*OpenAIClientHandle](i)
	openlibraryHandle := do.MustInvoke[*OpenLibraryClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAnalysisService(st, openaiHandle.Client, openlibraryHandle.Client, log.Logger), nil
}
