// File: pkg/storage/registry/registry.go
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"unistore/pkg/storage"
)

// Defines the function signature for checking a provider configuration before construction
type ConfigValidator func(cfg storage.ProviderConfig) error

// Defines the function signature for creating a new storage provider client
type ProviderInitializer func(ctx context.Context, cfg storage.ProviderConfig, logger *slog.Logger) (storage.Storage, error)

// Holds the necessary functions to validate configuration and initialize a provider
type ProviderRegistration struct {
	Validate    ConfigValidator
	Initializer ProviderInitializer
}

// Registry maps provider tags to their registrations. The zero value is not usable; use New
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ProviderRegistration
}

func New() *Registry {
	return &Registry{providers: make(map[string]ProviderRegistration)}
}

// Receives the self-registrations of provider packages from their init() functions
var defaultRegistry = New()

func Default() *Registry {
	return defaultRegistry
}

// Allows a provider implementation package to register itself during initialization (init())
func RegisterProvider(name string, registration ProviderRegistration) {
	defaultRegistry.Register(name, registration)
}

// Returns a sorted list of all registered provider names
func GetSupportedProviders() []string {
	return defaultRegistry.SupportedProviders()
}

func (r *Registry) Register(name string, registration ProviderRegistration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	normalizedName := strings.ToLower(name)
	if _, exists := r.providers[normalizedName]; exists {
		panic(fmt.Sprintf("provider %s already registered", normalizedName))
	}

	if registration.Validate == nil {
		panic(fmt.Sprintf("provider %s registration missing Validate", normalizedName))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("provider %s registration missing Initializer", normalizedName))
	}

	r.providers[normalizedName] = registration
}

func (r *Registry) Get(providerName string) (ProviderRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registration, exists := r.providers[strings.ToLower(providerName)]
	return registration, exists
}

func (r *Registry) SupportedProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.providers))
	for name := range r.providers {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}
