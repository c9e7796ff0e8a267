package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfscanapp/shelfscan-server/internal/config"
	"github.com/shelfscanapp/shelfscan-server/internal/cosmic"
	"github.com/shelfscanapp/shelfscan-server/internal/logger"
	"github.com/shelfscanapp/shelfscan-server/internal/metadata/openlibrary"
	"github.com/shelfscanapp/shelfscan-server/internal/openai"
	"github.com/shelfscanapp/shelfscan-server/internal/store"
)

// CosmicClientHandle wraps the Cosmic bucket client with shutdown capability.
type CosmicClientHandle struct {
	*cosmic.Client
}

// Shutdown implements do.Shutdownable.
func (h *CosmicClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideCosmicClient provides the Cosmic bucket client.
func ProvideCosmicClient(i do.Injector) (*CosmicClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := cosmic.NewClient(cosmic.Config{
		BucketSlug: cfg.Cosmic.BucketSlug,
		ReadKey:    cfg.Cosmic.ReadKey,
		WriteKey:   cfg.Cosmic.WriteKey,
		APIURL:     cfg.Cosmic.APIURL,
		UploadURL:  cfg.Cosmic.UploadURL,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Cosmic client initialized", "bucket", cfg.Cosmic.BucketSlug)
	return &CosmicClientHandle{Client: client}, nil
}

// ProvideStore provides the typed content store.
func ProvideStore(i do.Injector) (*store.Store, error) {
	clientHandle := do.MustInvoke[*CosmicClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return store.New(clientHandle.Client, log.Logger), nil
}

// OpenAIClientHandle wraps the vision client with shutdown capability.
type OpenAIClientHandle struct {
	*openai.Client
}

// Shutdown implements do.Shutdownable.
func (h *OpenAIClientHandle) Shutdown() error {
	return nil
}

// ProvideOpenAIClient provides the vision model client.
func ProvideOpenAIClient(i do.Injector) (*OpenAIClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("OpenAI client initialized", "model", client.Model())
	return &OpenAIClientHandle{Client: client}, nil
}

// OpenLibraryClientHandle wraps the Open Library client with shutdown capability.
type OpenLibraryClientHandle struct {
	*openlibrary.Client
}

// Shutdown implements do.Shutdownable.
func (h *OpenLibraryClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideOpenLibraryClient provides the Open Library cover lookup client.
func ProvideOpenLibraryClient(i do.Injector) (*OpenLibraryClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var opts []openlibrary.Option
	if cfg.OpenLibrary.BaseURL != "" {
		opts = append(opts, openlibrary.WithBaseURL(cfg.OpenLibrary.BaseURL))
	}

	client := openlibrary.NewClient(log.Logger, opts...)
	log.Info("Open Library client initialized")

	return &OpenLibraryClientHandle{Client: client}, nil
}
