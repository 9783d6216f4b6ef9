// File: pkg/storage/azure/client.go
package azure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"unistore/pkg/common"
	"unistore/pkg/storage"
	"unistore/pkg/storage/registry"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

func init() {
	registry.RegisterProvider(string(common.Azure), registry.ProviderRegistration{
		Validate:    validate,
		Initializer: initialize,
	})
}

func validate(cfg storage.ProviderConfig) error {
	azureCfg, err := storage.ConfigAs[*storage.AzureConfig](common.Azure, cfg)
	if err != nil {
		return err
	}
	return storage.ValidateAzureConfig(azureCfg)
}

// Initializes the container client from a validated configuration
func initialize(ctx context.Context, cfg storage.ProviderConfig, logger *slog.Logger) (storage.Storage, error) {
	azureCfg, err := storage.ConfigAs[*storage.AzureConfig](common.Azure, cfg)
	if err != nil {
		return nil, err
	}
	return NewAzureStorage(azureCfg, logger)
}

// Blob-level calls against the configured container
type containerAPI interface {
	UploadFile(ctx context.Context, blobName string, f *os.File) error
	DownloadFile(ctx context.Context, blobName string, f *os.File) (int64, error)
	Delete(ctx context.Context, blobName string) error
	BlobURL(blobName string) string
}

// Adapts *container.Client to containerAPI
type containerClient struct {
	client *container.Client
}

func (c containerClient) UploadFile(ctx context.Context, blobName string, f *os.File) error {
	_, err := c.client.NewBlockBlobClient(blobName).UploadFile(ctx, f, nil)
	return err
}

func (c containerClient) DownloadFile(ctx context.Context, blobName string, f *os.File) (int64, error) {
	return c.client.NewBlockBlobClient(blobName).DownloadFile(ctx, f, nil)
}

func (c containerClient) Delete(ctx context.Context, blobName string) error {
	_, err := c.client.NewBlockBlobClient(blobName).Delete(ctx, nil)
	return err
}

func (c containerClient) BlobURL(blobName string) string {
	return c.client.NewBlockBlobClient(blobName).URL()
}

type AzureStorage struct {
	container     containerAPI
	credential    *azblob.SharedKeyCredential
	containerName string
	logger        *slog.Logger
}

var _ storage.Storage = (*AzureStorage)(nil)

// Builds a Blob Storage provider authenticated with the account's shared key. The same key
// signs SAS tokens for pre-signed URLs. A key that is not valid base64 fails here.
func NewAzureStorage(cfg *storage.AzureConfig, logger *slog.Logger) (*AzureStorage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Azure configuration is nil")
	}

	credential, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid Azure shared key credential: %w", err)
	}

	containerURL := fmt.Sprintf("https://%s.blob.core.windows.net/%s", cfg.AccountName, cfg.ContainerName)
	client, err := container.NewClientWithSharedKeyCredential(containerURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure container client: %w", err)
	}

	return newAzureStorage(containerClient{client: client}, credential, cfg.ContainerName, logger), nil
}

func newAzureStorage(c containerAPI, credential *azblob.SharedKeyCredential, containerName string, logger *slog.Logger) *AzureStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &AzureStorage{
		container:     c,
		credential:    credential,
		containerName: containerName,
		logger:        logger,
	}
}

func (a *AzureStorage) ProviderName() common.Provider {
	return common.Azure
}

func (a *AzureStorage) Close() error {
	return nil
}
