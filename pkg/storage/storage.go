// File: pkg/storage/storage.go
package storage

import (
	"context"
	"time"

	"unistore/pkg/common"
)

// Lifetime of every pre-signed upload URL handed out by a provider
const PresignExpiry = 3600 * time.Second

// Storage is the capability every backend exposes. An instance is bound at construction
// to one bucket or container and one set of credentials and is never mutated afterwards,
// so it is safe for concurrent use. Concurrent writes to the same key race at the backend.
type Storage interface {
	ProviderName() common.Provider

	// Streams the local file to remotePath and returns a URL identifying the stored object
	UploadFile(ctx context.Context, localPath, remotePath string) (string, error)

	// Mints a short-lived URL that permits a client-side PUT to remotePath. No bytes are transferred
	UploadPreSignedURL(ctx context.Context, remotePath string) (string, error)

	// Fetches remoteKey into localPath. Returns only after the bytes are flushed to disk
	DownloadFile(ctx context.Context, remoteKey, localPath string) error

	// Removes remoteKey. Deleting an absent key succeeds
	DeleteFile(ctx context.Context, remoteKey string) error

	// Releases the underlying vendor client
	Close() error
}
