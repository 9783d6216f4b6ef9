// File: pkg/storage/gcp/objects.go
package gcp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"unistore/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// Content type the signed PUT is bound to; uploaders must send the same header
const presignContentType = "application/octet-stream"

func (g *GCPStorage) UploadFile(ctx context.Context, localPath, remotePath string) (string, error) {
	if err := storage.ValidatePaths(localPath, remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	g.logger.Debug("Starting GCS upload", "bucket", g.bucketName, "object", remotePath, "source", localPath)
	start := time.Now()

	f, _, err := storage.OpenFile(localPath)
	if err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	defer f.Close()

	// Cancelling the writer's context before Close discards a partial upload
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.bucket.NewWriter(writeCtx, remotePath)
	written, err := io.Copy(w, f)
	if err != nil {
		cancel()
		w.Close()
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	if err := w.Close(); err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}

	g.logger.Debug("GCS upload complete", "bucket", g.bucketName, "object", remotePath, "bytes", written, "duration", time.Since(start))
	return g.objectURL(remotePath), nil
}

func (g *GCPStorage) UploadPreSignedURL(ctx context.Context, remotePath string) (string, error) {
	if err := storage.ValidatePath(remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	signed, err := g.bucket.SignedURL(remotePath, &gcpstorage.SignedURLOptions{
		Scheme:      gcpstorage.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(storage.PresignExpiry),
		ContentType: presignContentType,
	})
	if err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	g.logger.Debug("Generated GCS signed upload URL", "bucket", g.bucketName, "object", remotePath)
	return signed, nil
}

func (g *GCPStorage) DownloadFile(ctx context.Context, remoteKey, localPath string) error {
	if err := storage.ValidatePaths(remoteKey, localPath); err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}
	g.logger.Debug("Starting GCS download", "bucket", g.bucketName, "object", remoteKey, "destination", localPath)
	start := time.Now()

	r, err := g.bucket.NewReader(ctx, remoteKey)
	if err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}
	defer r.Close()

	var written int64
	err = storage.WriteFile(localPath, func(f *os.File) error {
		var copyErr error
		written, copyErr = io.Copy(f, r)
		return copyErr
	})
	if err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}

	g.logger.Debug("GCS download complete", "bucket", g.bucketName, "object", remoteKey, "bytes", written, "duration", time.Since(start))
	return nil
}

func (g *GCPStorage) DeleteFile(ctx context.Context, remoteKey string) error {
	if err := storage.ValidatePath(remoteKey); err != nil {
		return storage.WrapOpError(storage.OpDelete, err)
	}

	if err := g.bucket.Delete(ctx, remoteKey); err != nil {
		if isNotFound(err) {
			g.logger.Debug("GCS object already absent", "bucket", g.bucketName, "object", remoteKey)
			return nil
		}
		return storage.WrapOpError(storage.OpDelete, err)
	}

	g.logger.Debug("Deleted GCS object", "bucket", g.bucketName, "object", remoteKey)
	return nil
}

func (g *GCPStorage) objectURL(key string) string {
	u := url.URL{Scheme: "https", Host: "storage.googleapis.com", Path: "/" + g.bucketName + "/" + key}
	return u.String()
}

func isNotFound(err error) bool {
	if errors.Is(err, gcpstorage.ErrObjectNotExist) {
		return true
	}
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
