// File: pkg/storage/r2/objects.go
package r2

import (
	"context"
	"io"
	"net/url"
	"os"
	"time"

	"unistore/pkg/storage"

	"github.com/minio/minio-go/v7"
)

// Returns the object's path-style URL on the account endpoint, like the other providers
func (s *R2Storage) UploadFile(ctx context.Context, localPath, remotePath string) (string, error) {
	if err := storage.ValidatePaths(localPath, remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	s.logger.Debug("Starting R2 upload", "bucket", s.bucketName, "key", remotePath, "source", localPath)
	start := time.Now()

	f, size, err := storage.OpenFile(localPath)
	if err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	defer f.Close()

	if err := s.bucket.PutObject(ctx, remotePath, f, size); err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}

	s.logger.Debug("R2 upload complete", "bucket", s.bucketName, "key", remotePath, "bytes", size, "duration", time.Since(start))
	return s.objectURL(remotePath), nil
}

// Path-style URL on the account endpoint with every path segment escaped
func (s *R2Storage) objectURL(key string) string {
	u := url.URL{Scheme: "https", Host: s.host, Path: "/" + s.bucketName + "/" + key}
	return u.String()
}

func (s *R2Storage) UploadPreSignedURL(ctx context.Context, remotePath string) (string, error) {
	if err := storage.ValidatePath(remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	u, err := s.bucket.PresignedPutObject(ctx, remotePath, storage.PresignExpiry)
	if err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	s.logger.Debug("Generated R2 pre-signed upload URL", "bucket", s.bucketName, "key", remotePath)
	return u.String(), nil
}

// A missing object is an error, never an empty successful download
func (s *R2Storage) DownloadFile(ctx context.Context, remoteKey, localPath string) error {
	if err := storage.ValidatePaths(remoteKey, localPath); err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}
	s.logger.Debug("Starting R2 download", "bucket", s.bucketName, "key", remoteKey, "destination", localPath)
	start := time.Now()

	r, err := s.bucket.GetObject(ctx, remoteKey)
	if err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}
	if r == nil {
		return storage.WrapOpError(storage.OpDownload, storage.ErrNoBody)
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

	s.logger.Debug("R2 download complete", "bucket", s.bucketName, "key", remoteKey, "bytes", written, "duration", time.Since(start))
	return nil
}

func (s *R2Storage) DeleteFile(ctx context.Context, remoteKey string) error {
	if err := storage.ValidatePath(remoteKey); err != nil {
		return storage.WrapOpError(storage.OpDelete, err)
	}

	if err := s.bucket.RemoveObject(ctx, remoteKey); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return storage.WrapOpError(storage.OpDelete, err)
	}

	s.logger.Debug("Deleted R2 object", "bucket", s.bucketName, "key", remoteKey)
	return nil
}
