// File: pkg/storage/r2/client.go
package r2

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"unistore/pkg/common"
	"unistore/pkg/storage"
	"unistore/pkg/storage/registry"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// R2 ignores the region but SigV4 requires one; setting it also stops minio from
// looking up the bucket location over the network before presigning
const r2Region = "auto"

func init() {
	registry.RegisterProvider(string(common.R2), registry.ProviderRegistration{
		Validate:    validate,
		Initializer: initialize,
	})
}

func validate(cfg storage.ProviderConfig) error {
	r2Cfg, err := storage.ConfigAs[*storage.R2Config](common.R2, cfg)
	if err != nil {
		return err
	}
	return storage.ValidateR2Config(r2Cfg)
}

// Initializes the S3-compatible client from a validated configuration
func initialize(ctx context.Context, cfg storage.ProviderConfig, logger *slog.Logger) (storage.Storage, error) {
	r2Cfg, err := storage.ConfigAs[*storage.R2Config](common.R2, cfg)
	if err != nil {
		return nil, err
	}
	return NewR2Storage(r2Cfg, logger)
}

// Object-level calls against the configured bucket
type bucketAPI interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, key string) error
	PresignedPutObject(ctx context.Context, key string, expires time.Duration) (*url.URL, error)
}

// Adapts *minio.Client bound to one bucket to bucketAPI
type bucketClient struct {
	client *minio.Client
	bucket string
}

func (b bucketClient) PutObject(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := b.client.PutObject(ctx, b.bucket, key, r, size, minio.PutObjectOptions{})
	return err
}

// minio defers the request until first use; Stat forces it so a missing object
// is reported before anything is written locally
func (b bucketClient) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (b bucketClient) RemoveObject(ctx context.Context, key string) error {
	return b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{})
}

func (b bucketClient) PresignedPutObject(ctx context.Context, key string, expires time.Duration) (*url.URL, error) {
	return b.client.PresignedPutObject(ctx, b.bucket, key, expires)
}

type R2Storage struct {
	bucket     bucketAPI
	bucketName string
	host       string
	logger     *slog.Logger
}

var _ storage.Storage = (*R2Storage)(nil)

func endpointHost(accountID string) string {
	return fmt.Sprintf("%s.r2.cloudflarestorage.com", accountID)
}

// Builds an R2 provider against the account's S3-compatible endpoint using static keys
func NewR2Storage(cfg *storage.R2Config, logger *slog.Logger) (*R2Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("R2 configuration is nil")
	}

	host := endpointHost(cfg.AccountID)
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: true,
		Region: r2Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create R2 client: %w", err)
	}

	return newR2Storage(bucketClient{client: client, bucket: cfg.Bucket}, cfg.Bucket, host, logger), nil
}

func newR2Storage(bucket bucketAPI, bucketName, host string, logger *slog.Logger) *R2Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &R2Storage{
		bucket:     bucket,
		bucketName: bucketName,
		host:       host,
		logger:     logger,
	}
}

func (s *R2Storage) ProviderName() common.Provider {
	return common.R2
}

func (s *R2Storage) Close() error {
	return nil
}
