// File: pkg/storage/azure/objects.go
package azure

import (
	"context"
	"os"
	"time"

	"unistore/pkg/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

func (a *AzureStorage) UploadFile(ctx context.Context, localPath, remotePath string) (string, error) {
	if err := storage.ValidatePaths(localPath, remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	a.logger.Debug("Starting Azure blob upload", "container", a.containerName, "blob", remotePath, "source", localPath)
	start := time.Now()

	f, size, err := storage.OpenFile(localPath)
	if err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	defer f.Close()

	if err := a.container.UploadFile(ctx, remotePath, f); err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}

	a.logger.Debug("Azure blob upload complete", "container", a.containerName, "blob", remotePath, "bytes", size, "duration", time.Since(start))
	return a.container.BlobURL(remotePath), nil
}

// Signs a blob SAS (create, write, read; HTTPS only) locally with the shared key
func (a *AzureStorage) UploadPreSignedURL(ctx context.Context, remotePath string) (string, error) {
	if err := storage.ValidatePath(remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	permissions := sas.BlobPermissions{Create: true, Write: true, Read: true}
	query, err := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    time.Now().UTC().Add(storage.PresignExpiry),
		Permissions:   permissions.String(),
		ContainerName: a.containerName,
		BlobName:      remotePath,
	}.SignWithSharedKey(a.credential)
	if err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	a.logger.Debug("Generated Azure SAS upload URL", "container", a.containerName, "blob", remotePath)
	return a.container.BlobURL(remotePath) + "?" + query.Encode(), nil
}

func (a *AzureStorage) DownloadFile(ctx context.Context, remoteKey, localPath string) error {
	if err := storage.ValidatePaths(remoteKey, localPath); err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}
	a.logger.Debug("Starting Azure blob download", "container", a.containerName, "blob", remoteKey, "destination", localPath)
	start := time.Now()

	var written int64
	err := storage.WriteFile(localPath, func(f *os.File) error {
		var downloadErr error
		written, downloadErr = a.container.DownloadFile(ctx, remoteKey, f)
		return downloadErr
	})
	if err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}

	a.logger.Debug("Azure blob download complete", "container", a.containerName, "blob", remoteKey, "bytes", written, "duration", time.Since(start))
	return nil
}

func (a *AzureStorage) DeleteFile(ctx context.Context, remoteKey string) error {
	if err := storage.ValidatePath(remoteKey); err != nil {
		return storage.WrapOpError(storage.OpDelete, err)
	}

	if err := a.container.Delete(ctx, remoteKey); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			a.logger.Debug("Azure blob already absent", "container", a.containerName, "blob", remoteKey)
			return nil
		}
		return storage.WrapOpError(storage.OpDelete, err)
	}

	a.logger.Debug("Deleted Azure blob", "container", a.containerName, "blob", remoteKey)
	return nil
}
