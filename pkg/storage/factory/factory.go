// File: pkg/storage/factory/factory.go
package factory

import (
	"context"
	"log/slog"
	"strings"

	"unistore/pkg/common"
	"unistore/pkg/storage"
	"unistore/pkg/storage/registry"

	// Provider packages register themselves with the default registry in init()
	_ "unistore/pkg/storage/aws"
	_ "unistore/pkg/storage/azure"
	_ "unistore/pkg/storage/gcp"
	_ "unistore/pkg/storage/r2"
)

type Factory struct {
	registry *registry.Registry
	logger   *slog.Logger
}

type Option func(*Factory)

// Resolves providers from r instead of the default registry
func WithRegistry(r *registry.Registry) Option {
	return func(f *Factory) {
		f.registry = r
	}
}

func NewFactory(logger *slog.Logger, opts ...Option) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	f := &Factory{
		registry: registry.Default(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Validates cfg for the given provider tag and constructs the matching provider using the
// default logger. See Factory.NewStorage.
func NewStorage(ctx context.Context, provider common.Provider, cfg storage.ProviderConfig) (storage.Storage, error) {
	return NewFactory(nil).NewStorage(ctx, provider, cfg)
}

// Dispatches on the provider tag, runs its validator and constructs the provider.
// Validation errors propagate unchanged and never reach construction; construction
// failures are wrapped as "Failed to create storage provider: <cause>".
func (f *Factory) NewStorage(ctx context.Context, provider common.Provider, cfg storage.ProviderConfig) (storage.Storage, error) {
	normalizedName := strings.ToLower(string(provider))

	registration, exists := f.registry.Get(normalizedName)
	if !exists {
		return nil, storage.NewUnsupportedProviderError(string(provider))
	}

	if err := registration.Validate(cfg); err != nil {
		f.logger.Debug("Provider configuration rejected", "provider", normalizedName, "error", err)
		return nil, err
	}

	providerLogger := f.logger.With("provider", normalizedName)
	client, err := registration.Initializer(ctx, cfg, providerLogger)
	if err != nil {
		return nil, storage.WrapOpError(storage.OpCreate, err)
	}

	providerLogger.Debug("Storage provider initialized")
	return client, nil
}

// Returns a sorted list of provider tags this factory can construct
func (f *Factory) SupportedProviders() []string {
	return f.registry.SupportedProviders()
}
