// File: pkg/storage/gcp/client.go
package gcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"unistore/pkg/common"
	"unistore/pkg/storage"
	"unistore/pkg/storage/registry"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

func init() {
	registry.RegisterProvider(string(common.GCP), registry.ProviderRegistration{
		Validate:    validate,
		Initializer: initialize,
	})
}

func validate(cfg storage.ProviderConfig) error {
	gcpCfg, err := storage.ConfigAs[*storage.GCPConfig](common.GCP, cfg)
	if err != nil {
		return err
	}
	return storage.ValidateGCPConfig(gcpCfg)
}

// Initializes the GCS client from a validated configuration
func initialize(ctx context.Context, cfg storage.ProviderConfig, logger *slog.Logger) (storage.Storage, error) {
	gcpCfg, err := storage.ConfigAs[*storage.GCPConfig](common.GCP, cfg)
	if err != nil {
		return nil, err
	}
	return NewGCPStorage(ctx, gcpCfg, logger)
}

// Object-level calls against the configured bucket
type bucketAPI interface {
	NewWriter(ctx context.Context, key string) io.WriteCloser
	NewReader(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	SignedURL(key string, opts *gcpstorage.SignedURLOptions) (string, error)
}

// Adapts *gcpstorage.BucketHandle to bucketAPI
type bucketHandle struct {
	handle *gcpstorage.BucketHandle
}

func (b bucketHandle) NewWriter(ctx context.Context, key string) io.WriteCloser {
	return b.handle.Object(key).NewWriter(ctx)
}

func (b bucketHandle) NewReader(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := b.handle.Object(key).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (b bucketHandle) Delete(ctx context.Context, key string) error {
	return b.handle.Object(key).Delete(ctx)
}

func (b bucketHandle) SignedURL(key string, opts *gcpstorage.SignedURLOptions) (string, error) {
	return b.handle.SignedURL(key, opts)
}

type GCPStorage struct {
	client     io.Closer
	bucket     bucketAPI
	bucketName string
	logger     *slog.Logger
}

var _ storage.Storage = (*GCPStorage)(nil)

// Builds a GCS-backed provider authenticated with the service-account key file. The same
// key is used to sign pre-signed URLs.
func NewGCPStorage(ctx context.Context, cfg *storage.GCPConfig, logger *slog.Logger) (*GCPStorage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("GCP configuration is nil")
	}

	client, err := gcpstorage.NewClient(ctx, option.WithCredentialsFile(cfg.KeyFilename))
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	return newGCPStorage(client, bucketHandle{handle: client.Bucket(cfg.Bucket)}, cfg.Bucket, logger), nil
}

func newGCPStorage(client io.Closer, bucket bucketAPI, bucketName string, logger *slog.Logger) *GCPStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &GCPStorage{
		client:     client,
		bucket:     bucket,
		bucketName: bucketName,
		logger:     logger,
	}
}

func (g *GCPStorage) ProviderName() common.Provider {
	return common.GCP
}

func (g *GCPStorage) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
