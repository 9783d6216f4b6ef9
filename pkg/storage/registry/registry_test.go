// File: pkg/storage/registry/registry_test.go
package registry

import (
	"context"
	"log/slog"
	"testing"

	"unistore/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopRegistration() ProviderRegistration {
	return ProviderRegistration{
		Validate: func(storage.ProviderConfig) error { return nil },
		Initializer: func(context.Context, storage.ProviderConfig, *slog.Logger) (storage.Storage, error) {
			return nil, nil
		},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := New()
	r.Register("Alpha", noopRegistration())
	r.Register("beta", noopRegistration())

	_, ok := r.Get("alpha")
	assert.True(t, ok, "lookup is case-insensitive")
	_, ok = r.Get("BETA")
	assert.True(t, ok)
	_, ok = r.Get("gamma")
	assert.False(t, ok)

	assert.Equal(t, []string{"alpha", "beta"}, r.SupportedProviders())
}

func TestRegistry_RegisterPanics(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		r := New()
		r.Register("alpha", noopRegistration())
		assert.PanicsWithValue(t, "provider alpha already registered", func() {
			r.Register("ALPHA", noopRegistration())
		})
	})

	t.Run("missing validator", func(t *testing.T) {
		reg := noopRegistration()
		reg.Validate = nil
		assert.Panics(t, func() { New().Register("alpha", reg) })
	})

	t.Run("missing initializer", func(t *testing.T) {
		reg := noopRegistration()
		reg.Initializer = nil
		assert.Panics(t, func() { New().Register("alpha", reg) })
	})
}

func TestRegistry_EmptyIsUsable(t *testing.T) {
	r := New()
	require.NotNil(t, r.SupportedProviders())
	assert.Empty(t, r.SupportedProviders())
}
