// File: pkg/storage/aws/objects.go
package aws

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"time"

	"unistore/pkg/storage"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func (s *AWSStorage) UploadFile(ctx context.Context, localPath, remotePath string) (string, error) {
	if err := storage.ValidatePaths(localPath, remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	s.logger.Debug("Starting S3 upload", "bucket", s.bucket, "key", remotePath, "source", localPath)
	start := time.Now()

	f, size, err := storage.OpenFile(localPath)
	if err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        awssdk.String(s.bucket),
		Key:           awssdk.String(remotePath),
		Body:          f,
		ContentLength: awssdk.Int64(size),
	})
	if err != nil {
		return "", storage.WrapOpError(storage.OpUpload, err)
	}

	s.logger.Debug("S3 upload complete", "bucket", s.bucket, "key", remotePath, "bytes", size, "duration", time.Since(start))
	return s.objectURL(remotePath), nil
}

func (s *AWSStorage) UploadPreSignedURL(ctx context.Context, remotePath string) (string, error) {
	if err := storage.ValidatePath(remotePath); err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(remotePath),
	}, s3.WithPresignExpires(storage.PresignExpiry))
	if err != nil {
		return "", storage.WrapOpError(storage.OpPresign, err)
	}

	s.logger.Debug("Generated S3 pre-signed upload URL", "bucket", s.bucket, "key", remotePath)
	return req.URL, nil
}

func (s *AWSStorage) DownloadFile(ctx context.Context, remoteKey, localPath string) error {
	if err := storage.ValidatePaths(remoteKey, localPath); err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}
	s.logger.Debug("Starting S3 download", "bucket", s.bucket, "key", remoteKey, "destination", localPath)
	start := time.Now()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(remoteKey),
	})
	if err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}
	if out.Body == nil {
		return storage.WrapOpError(storage.OpDownload, storage.ErrNoBody)
	}
	defer out.Body.Close()

	var written int64
	err = storage.WriteFile(localPath, func(f *os.File) error {
		var copyErr error
		written, copyErr = io.Copy(f, out.Body)
		return copyErr
	})
	if err != nil {
		return storage.WrapOpError(storage.OpDownload, err)
	}

	s.logger.Debug("S3 download complete", "bucket", s.bucket, "key", remoteKey, "bytes", written, "duration", time.Since(start))
	return nil
}

// S3 DeleteObject normally succeeds for absent keys; S3-compatible endpoints that report
// NoSuchKey are treated the same way
func (s *AWSStorage) DeleteFile(ctx context.Context, remoteKey string) error {
	if err := storage.ValidatePath(remoteKey); err != nil {
		return storage.WrapOpError(storage.OpDelete, err)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(remoteKey),
	})
	if err != nil {
		if isNoSuchKey(err) {
			s.logger.Debug("S3 object already absent", "bucket", s.bucket, "key", remoteKey)
			return nil
		}
		return storage.WrapOpError(storage.OpDelete, err)
	}

	s.logger.Debug("Deleted S3 object", "bucket", s.bucket, "key", remoteKey)
	return nil
}

func isNoSuchKey(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

// Virtual-hosted URL of key with every path segment escaped
func (s *AWSStorage) objectURL(key string) string {
	u := url.URL{Scheme: "https", Host: s.bucket + ".s3.amazonaws.com", Path: "/" + key}
	return u.String()
}
