// File: internal/service/object_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"unistore/internal/metrics"
	"unistore/pkg/common"
	"unistore/pkg/storage"
	"unistore/pkg/storage/factory"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// Supplies the stored configuration for a provider
type ConfigSource interface {
	ProviderConfig(p common.Provider) (storage.ProviderConfig, error)
}

type ObjectService struct {
	providerFactory *factory.Factory
	configs         ConfigSource
	recorder        *metrics.Recorder
	timeout         time.Duration
	logger          *slog.Logger
}

// recorder may be nil to skip instrumentation; a zero timeout leaves operations unbounded
func NewObjectService(providerFactory *factory.Factory, configs ConfigSource, recorder *metrics.Recorder, timeout time.Duration, logger *slog.Logger) *ObjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ObjectService{
		providerFactory: providerFactory,
		configs:         configs,
		recorder:        recorder,
		timeout:         timeout,
		logger:          logger.With("service", "ObjectService"),
	}
}

// Upload request for one local file
type UploadRequest struct {
	LocalPath  string
	RemotePath string
}

// Builds upload requests for localPaths. With a key the single file is stored under exactly
// that key; otherwise each file keeps its base name under the optional dest prefix.
func PlanUploads(localPaths []string, dest, key string) ([]UploadRequest, error) {
	if key != "" {
		if len(localPaths) != 1 {
			return nil, fmt.Errorf("--key can only be used with a single file, got %d", len(localPaths))
		}
		return []UploadRequest{{LocalPath: localPaths[0], RemotePath: key}}, nil
	}

	prefix := strings.Trim(dest, "/")
	requests := make([]UploadRequest, 0, len(localPaths))
	for _, localPath := range localPaths {
		remotePath := filepath.Base(localPath)
		if prefix != "" {
			remotePath = path.Join(prefix, remotePath)
		}
		requests = append(requests, UploadRequest{LocalPath: localPath, RemotePath: remotePath})
	}
	return requests, nil
}

// Uploads every request with at most concurrency transfers in flight. Each file is an
// independent operation: one failure neither cancels nor fails the others. Results keep
// the order of reqs; the returned error only reports that the provider could not be built.
func (s *ObjectService) UploadFiles(ctx context.Context, providerName string, reqs []UploadRequest, concurrency int) ([]storage.Transfer, error) {
	s.logger.Debug("Starting UploadFiles operation", "provider", providerName, "files", len(reqs), "concurrency", concurrency)

	client, err := s.getStorageClient(ctx, providerName)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]storage.Transfer, len(reqs))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			results[i] = s.uploadOne(ctx, client, req)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if !r.Succeeded() {
			failed++
		}
	}
	s.logger.Debug("UploadFiles finished", "provider", providerName, "files", len(reqs), "failed", failed)
	return results, nil
}

func (s *ObjectService) uploadOne(ctx context.Context, client storage.Storage, req UploadRequest) storage.Transfer {
	transfer := storage.Transfer{
		Provider:   client.ProviderName(),
		LocalPath:  req.LocalPath,
		RemotePath: req.RemotePath,
		Bytes:      -1,
	}
	if info, err := os.Stat(req.LocalPath); err == nil {
		transfer.Bytes = info.Size()
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	transfer.URL, transfer.Err = client.UploadFile(opCtx, req.LocalPath, req.RemotePath)
	transfer.Duration = time.Since(start)

	if transfer.Err != nil {
		s.logger.Error("Failed to upload file", "provider", transfer.Provider, "source", req.LocalPath, "key", req.RemotePath, "error", transfer.Err)
	}
	return transfer
}

func (s *ObjectService) PresignUpload(ctx context.Context, providerName, remotePath string) (string, error) {
	s.logger.Debug("Starting PresignUpload operation", "provider", providerName, "key", remotePath)

	client, err := s.getStorageClient(ctx, providerName)
	if err != nil {
		return "", err
	}
	defer client.Close()

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	url, err := client.UploadPreSignedURL(opCtx, remotePath)
	if err != nil {
		s.logger.Error("Failed to generate pre-signed URL", "provider", providerName, "key", remotePath, "error", err)
		return "", err
	}
	return url, nil
}

func (s *ObjectService) DownloadFile(ctx context.Context, providerName, remoteKey, localPath string) error {
	s.logger.Debug("Starting DownloadFile operation", "provider", providerName, "key", remoteKey, "destination", localPath)

	client, err := s.getStorageClient(ctx, providerName)
	if err != nil {
		return err
	}
	defer client.Close()

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := client.DownloadFile(opCtx, remoteKey, localPath); err != nil {
		s.logger.Error("Failed to download file", "provider", providerName, "key", remoteKey, "error", err)
		return err
	}
	return nil
}

func (s *ObjectService) DeleteFile(ctx context.Context, providerName, remoteKey string) error {
	s.logger.Debug("Starting DeleteFile operation", "provider", providerName, "key", remoteKey)

	client, err := s.getStorageClient(ctx, providerName)
	if err != nil {
		return err
	}
	defer client.Close()

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := client.DeleteFile(opCtx, remoteKey); err != nil {
		s.logger.Error("Failed to delete file", "provider", providerName, "key", remoteKey, "error", err)
		return err
	}
	return nil
}

func (s *ObjectService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Helper to resolve, construct and instrument the provider named by the user
func (s *ObjectService) getStorageClient(ctx context.Context, providerName string) (storage.Storage, error) {
	provider, ok := common.ParseProvider(providerName)
	if !ok {
		return nil, storage.NewUnsupportedProviderError(providerName)
	}

	cfg, err := s.configs.ProviderConfig(provider)
	if err != nil {
		return nil, err
	}

	client, err := s.providerFactory.NewStorage(ctx, provider, cfg)
	if err != nil {
		s.logger.Error("Failed to initialize provider", "provider", provider, "error", err)
		return nil, err
	}

	if s.recorder != nil {
		client = s.recorder.Instrument(client)
	}
	return client, nil
}
