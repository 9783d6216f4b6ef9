// File: pkg/storage/factory/factory_test.go
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"unistore/pkg/common"
	"unistore/pkg/storage"
	"unistore/pkg/storage/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStorage struct {
	provider common.Provider
}

func (s *stubStorage) ProviderName() common.Provider { return s.provider }
func (s *stubStorage) UploadFile(context.Context, string, string) (string, error) {
	return "", nil
}
func (s *stubStorage) UploadPreSignedURL(context.Context, string) (string, error) {
	return "", nil
}
func (s *stubStorage) DownloadFile(context.Context, string, string) error { return nil }
func (s *stubStorage) DeleteFile(context.Context, string) error           { return nil }
func (s *stubStorage) Close() error                                       { return nil }

// Narrows cfg to the provider's shape before running its presence checks
func typedValidator[T storage.ProviderConfig](p common.Provider, check func(T) error) registry.ConfigValidator {
	return func(cfg storage.ProviderConfig) error {
		typed, err := storage.ConfigAs[T](p, cfg)
		if err != nil {
			return err
		}
		return check(typed)
	}
}

var validators = map[common.Provider]registry.ConfigValidator{
	common.AWS:   typedValidator(common.AWS, storage.ValidateAWSConfig),
	common.GCP:   typedValidator(common.GCP, storage.ValidateGCPConfig),
	common.Azure: typedValidator(common.Azure, storage.ValidateAzureConfig),
	common.R2:    typedValidator(common.R2, storage.ValidateR2Config),
}

// Registry whose initializers only count calls, with the real validators
type countingRegistry struct {
	*registry.Registry
	calls   map[common.Provider]int
	failure error
}

func newCountingRegistry() *countingRegistry {
	cr := &countingRegistry{Registry: registry.New(), calls: make(map[common.Provider]int)}
	for _, p := range common.Providers() {
		cr.Register(string(p), registry.ProviderRegistration{
			Validate: validators[p],
			Initializer: func(ctx context.Context, cfg storage.ProviderConfig, logger *slog.Logger) (storage.Storage, error) {
				cr.calls[p]++
				if cr.failure != nil {
					return nil, cr.failure
				}
				return &stubStorage{provider: p}, nil
			},
		})
	}
	return cr
}

func (cr *countingRegistry) totalCalls() int {
	total := 0
	for _, n := range cr.calls {
		total += n
	}
	return total
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validConfigs() map[common.Provider]storage.ProviderConfig {
	return map[common.Provider]storage.ProviderConfig{
		common.AWS: &storage.AWSConfig{
			Region: "us-east-1",
			Bucket: "my-bucket",
			Credentials: &storage.AWSCredentials{
				AccessKeyID:     "AKIDEXAMPLE",
				SecretAccessKey: "secret",
			},
		},
		common.GCP: &storage.GCPConfig{Bucket: "my-bucket", KeyFilename: "/path/to/key.json"},
		common.Azure: &storage.AzureConfig{
			AccountName:   "acct",
			AccountKey:    "c2VjcmV0LWFjY291bnQta2V5",
			ContainerName: "uploads",
		},
		common.R2: &storage.R2Config{
			AccountID:       "abc123",
			AccessKeyID:     "r2-access-key",
			SecretAccessKey: "r2-secret-key",
			Bucket:          "my-bucket",
		},
	}
}

func TestFactory_ValidConfigConstructsProvider(t *testing.T) {
	for provider, cfg := range validConfigs() {
		t.Run(string(provider), func(t *testing.T) {
			cr := newCountingRegistry()
			f := NewFactory(quietLogger(), WithRegistry(cr.Registry))

			client, err := f.NewStorage(context.Background(), provider, cfg)
			require.NoError(t, err)
			assert.Equal(t, provider, client.ProviderName())
			assert.Equal(t, 1, cr.calls[provider])
		})
	}
}

func TestFactory_MissingFieldNeverConstructs(t *testing.T) {
	tests := []struct {
		name     string
		provider common.Provider
		cfg      storage.ProviderConfig
		message  string
	}{
		{
			name:     "aws without bucket",
			provider: common.AWS,
			cfg: &storage.AWSConfig{
				Region:      "us-east-1",
				Credentials: &storage.AWSCredentials{AccessKeyID: "a", SecretAccessKey: "b"},
			},
			message: "Invalid AWS configuration: missing required fields",
		},
		{
			name:     "gcp without key file",
			provider: common.GCP,
			cfg:      &storage.GCPConfig{Bucket: "b"},
			message:  "Invalid GCP configuration: missing required fields",
		},
		{
			name:     "azure without account key",
			provider: common.Azure,
			cfg:      &storage.AzureConfig{AccountName: "a", ContainerName: "c"},
			message:  "Invalid Azure configuration: missing required fields",
		},
		{
			name:     "r2 without bucket",
			provider: common.R2,
			cfg:      &storage.R2Config{AccountID: "a", AccessKeyID: "b", SecretAccessKey: "c"},
			message:  "Invalid R2 configuration: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := newCountingRegistry()
			f := NewFactory(quietLogger(), WithRegistry(cr.Registry))

			client, err := f.NewStorage(context.Background(), tt.provider, tt.cfg)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), tt.message)
			assert.NotContains(t, err.Error(), "Failed to create storage provider")
			assert.ErrorIs(t, err, storage.ErrInvalidConfig)
			assert.Zero(t, cr.totalCalls())
		})
	}
}

func TestFactory_UnsupportedProvider(t *testing.T) {
	cr := newCountingRegistry()
	f := NewFactory(quietLogger(), WithRegistry(cr.Registry))

	for _, cfg := range validConfigs() {
		client, err := f.NewStorage(context.Background(), common.Provider("oracle"), cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Equal(t, "Unsupported provider: oracle", err.Error())
		assert.ErrorIs(t, err, storage.ErrUnsupportedProvider)
	}
	assert.Zero(t, cr.totalCalls())
}

func TestFactory_MismatchedConfigShape(t *testing.T) {
	cr := newCountingRegistry()
	f := NewFactory(quietLogger(), WithRegistry(cr.Registry))

	_, err := f.NewStorage(context.Background(), common.AWS, &storage.GCPConfig{Bucket: "b", KeyFilename: "k"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "Invalid AWS configuration")
	assert.Zero(t, cr.totalCalls())
}

func TestFactory_ConstructionFailureIsWrapped(t *testing.T) {
	cr := newCountingRegistry()
	cr.failure = errors.New("boom")
	f := NewFactory(quietLogger(), WithRegistry(cr.Registry))

	_, err := f.NewStorage(context.Background(), common.R2, validConfigs()[common.R2])
	require.Error(t, err)
	assert.Equal(t, "Failed to create storage provider: boom", err.Error())
	assert.Equal(t, 1, cr.calls[common.R2])
}

func TestNewStorage_DefaultRegistryIsComplete(t *testing.T) {
	assert.Equal(t, []string{"aws", "azure", "gcp", "r2"}, NewFactory(nil).SupportedProviders())
}

func TestNewStorage_DefaultRegistryBuildsOfflineClients(t *testing.T) {
	ctx := context.Background()
	configs := validConfigs()

	for _, provider := range []common.Provider{common.AWS, common.Azure, common.R2} {
		t.Run(string(provider), func(t *testing.T) {
			client, err := NewStorage(ctx, provider, configs[provider])
			require.NoError(t, err)
			defer client.Close()
			assert.Equal(t, provider, client.ProviderName())
		})
	}
}

func TestNewStorage_GCPMissingKeyFileIsWrapped(t *testing.T) {
	_, err := NewStorage(context.Background(), common.GCP, &storage.GCPConfig{
		Bucket:      "my-bucket",
		KeyFilename: filepath.Join(t.TempDir(), "missing.json"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to create storage provider:")
}
