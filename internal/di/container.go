// Package di provides dependency injection configuration for the ShelfScan server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shelfscanapp/shelfscan-server/internal/config"
	"github.com/shelfscanapp/shelfscan-server/internal/di/providers"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
	"github.com/shelfscanapp/shelfscan-server/internal/service"
	"github.com/shelfscanapp/shelfscan-server/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Content store layer
	do.Provide(injector, providers.ProvideCosmicClient)
	do.Provide(injector, providers.ProvideStore)

	// External clients
	do.Provide(injector, providers.ProvideOpenAIClient)
	do.Provide(injector, providers.ProvideOpenLibraryClient)

	// Business services
	do.Provide(injector, providers.ProvideUploadService)
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAnalysisService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.CosmicClientHandle](injector)
	_ = do.MustInvoke[*store.Store](injector)
	_ = do.MustInvoke[*providers.OpenAIClientHandle](injector)
	_ = do.MustInvoke[*providers.OpenLibraryClientHandle](injector)
	_ = do.MustInvoke[*service.UploadService](injector)
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AnalysisService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
