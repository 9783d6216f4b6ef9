// File: pkg/storage/aws/client.go
package aws

import (
	"context"
	"fmt"
	"log/slog"

	"unistore/pkg/common"
	"unistore/pkg/storage"
	"unistore/pkg/storage/registry"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func init() {
	registry.RegisterProvider(string(common.AWS), registry.ProviderRegistration{
		Validate:    validate,
		Initializer: initialize,
	})
}

func validate(cfg storage.ProviderConfig) error {
	awsCfg, err := storage.ConfigAs[*storage.AWSConfig](common.AWS, cfg)
	if err != nil {
		return err
	}
	return storage.ValidateAWSConfig(awsCfg)
}

// Initializes the S3 client from a validated configuration
func initialize(ctx context.Context, cfg storage.ProviderConfig, logger *slog.Logger) (storage.Storage, error) {
	awsCfg, err := storage.ConfigAs[*storage.AWSConfig](common.AWS, cfg)
	if err != nil {
		return nil, err
	}
	return NewAWSStorage(ctx, awsCfg, logger)
}

// Subset of *s3.Client used by the provider
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Subset of *s3.PresignClient used by the provider
type presignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type AWSStorage struct {
	client    s3API
	presigner presignAPI
	bucket    string
	region    string
	logger    *slog.Logger
}

var _ storage.Storage = (*AWSStorage)(nil)

// Builds an S3-backed provider. Static credentials are used when present, otherwise
// the SDK default credential chain (environment, shared config, instance role).
func NewAWSStorage(ctx context.Context, cfg *storage.AWSConfig, logger *slog.Logger) (*AWSStorage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("AWS configuration is nil")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Credentials != nil {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Credentials.AccessKeyID, cfg.Credentials.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return newAWSStorage(client, s3.NewPresignClient(client), cfg.Bucket, cfg.Region, logger), nil
}

func newAWSStorage(client s3API, presigner presignAPI, bucket, region string, logger *slog.Logger) *AWSStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &AWSStorage{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		region:    region,
		logger:    logger,
	}
}

func (s *AWSStorage) ProviderName() common.Provider {
	return common.AWS
}

func (s *AWSStorage) Close() error {
	// The S3 client holds no resources that need releasing
	return nil
}
