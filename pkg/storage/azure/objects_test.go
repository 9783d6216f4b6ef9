// File: pkg/storage/azure/objects_test.go
package azure

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"unistore/pkg/common"
	"unistore/pkg/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAccountKey = base64.StdEncoding.EncodeToString([]byte("not-a-real-account-key"))

// In-memory stand-in for a blob container with per-call counters
type fakeContainer struct {
	mu    sync.Mutex
	blobs map[string][]byte

	uploads, downloads, deletes int
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{blobs: make(map[string][]byte)}
}

func blobNotFound() error {
	return &azcore.ResponseError{ErrorCode: string(bloberror.BlobNotFound), StatusCode: http.StatusNotFound}
}

func (c *fakeContainer) UploadFile(ctx context.Context, blobName string, f *os.File) error {
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploads++
	c.blobs[blobName] = data
	return nil
}

func (c *fakeContainer) DownloadFile(ctx context.Context, blobName string, f *os.File) (int64, error) {
	c.mu.Lock()
	c.downloads++
	data, ok := c.blobs[blobName]
	c.mu.Unlock()
	if !ok {
		return 0, blobNotFound()
	}
	n, err := f.Write(data)
	return int64(n), err
}

func (c *fakeContainer) Delete(ctx context.Context, blobName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	if _, ok := c.blobs[blobName]; !ok {
		return blobNotFound()
	}
	delete(c.blobs, blobName)
	return nil
}

func (c *fakeContainer) BlobURL(blobName string) string {
	return "https://acct.blob.core.windows.net/uploads/" + blobName
}

func newTestStorage(t *testing.T, c *fakeContainer) *AzureStorage {
	t.Helper()
	credential, err := azblob.NewSharedKeyCredential("acct", testAccountKey)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newAzureStorage(c, credential, "uploads", logger)
}

func writeLocal(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAzureStorage_RoundTrip(t *testing.T) {
	c := newFakeContainer()
	a := newTestStorage(t, c)
	ctx := context.Background()

	url, err := a.UploadFile(ctx, writeLocal(t, "in.txt", "blob bytes"), "k1")
	require.NoError(t, err)
	assert.Equal(t, "https://acct.blob.core.windows.net/uploads/k1", url)

	dst := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, a.DownloadFile(ctx, "k1", dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "blob bytes", string(got))
	assert.Equal(t, common.Azure, a.ProviderName())
}

func TestAzureStorage_InvalidPathsNeverReachBackend(t *testing.T) {
	c := newFakeContainer()
	a := newTestStorage(t, c)
	ctx := context.Background()

	_, err := a.UploadFile(ctx, "", "k1")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
	_, err = a.UploadFile(ctx, writeLocal(t, "f", "x"), "")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
	_, err = a.UploadPreSignedURL(ctx, "")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
	assert.ErrorIs(t, a.DownloadFile(ctx, "k1", ""), storage.ErrInvalidPath)
	assert.ErrorIs(t, a.DeleteFile(ctx, ""), storage.ErrInvalidPath)

	assert.Zero(t, c.uploads)
	assert.Zero(t, c.downloads)
	assert.Zero(t, c.deletes)
}

func TestAzureStorage_DownloadMissingBlob(t *testing.T) {
	a := newTestStorage(t, newFakeContainer())
	dst := filepath.Join(t.TempDir(), "out.txt")

	err := a.DownloadFile(context.Background(), "absent", dst)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to download file:"))
	assert.True(t, bloberror.HasCode(err, bloberror.BlobNotFound))

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAzureStorage_DeleteIsIdempotent(t *testing.T) {
	c := newFakeContainer()
	a := newTestStorage(t, c)
	ctx := context.Background()

	_, err := a.UploadFile(ctx, writeLocal(t, "f", "x"), "k1")
	require.NoError(t, err)

	require.NoError(t, a.DeleteFile(ctx, "k1"))
	require.NoError(t, a.DeleteFile(ctx, "k1"))
	assert.Equal(t, 2, c.deletes)
}

func TestAzureStorage_PresignSignsLocally(t *testing.T) {
	c := newFakeContainer()
	a := newTestStorage(t, c)

	url, err := a.UploadPreSignedURL(context.Background(), "dest")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://acct.blob.core.windows.net/uploads/dest?"))
	assert.Contains(t, url, "sig=")
	assert.Contains(t, url, "sp=rcw")
	assert.Contains(t, url, "spr=https")
	assert.Zero(t, c.uploads)
}

func TestNewAzureStorage(t *testing.T) {
	a, err := NewAzureStorage(&storage.AzureConfig{
		AccountName:   "acct",
		AccountKey:    testAccountKey,
		ContainerName: "uploads",
	}, nil)
	require.NoError(t, err)

	url, err := a.UploadPreSignedURL(context.Background(), "reports/q1.pdf")
	require.NoError(t, err)
	assert.Contains(t, url, "acct.blob.core.windows.net/uploads/")
	assert.Contains(t, url, "sig=")

	_, err = NewAzureStorage(&storage.AzureConfig{
		AccountName:   "acct",
		AccountKey:    "%%% not base64 %%%",
		ContainerName: "uploads",
	}, nil)
	assert.Error(t, err)
}
