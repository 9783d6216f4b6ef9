// File: pkg/storage/errors_test.go
package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapOpError(t *testing.T) {
	cause := errors.New("connection reset")

	err := WrapOpError(OpUpload, cause)
	require.Error(t, err)
	assert.Equal(t, "Failed to upload file: connection reset", err.Error())
	assert.True(t, errors.Is(err, cause))

	assert.NoError(t, WrapOpError(OpDelete, nil))
}

func TestWrapOpError_InvalidPath(t *testing.T) {
	err := WrapOpError(OpDownload, ValidatePath(""))
	require.Error(t, err)
	assert.Equal(t, "Failed to download file: Invalid path provided", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidPath))
}

func TestUnsupportedProviderError(t *testing.T) {
	err := NewUnsupportedProviderError("oracle")
	assert.Equal(t, "Unsupported provider: oracle", err.Error())
	assert.True(t, errors.Is(err, ErrUnsupportedProvider))
	assert.False(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidatePaths(t *testing.T) {
	assert.NoError(t, ValidatePaths("a.txt", "dir/b.txt"))
	assert.ErrorIs(t, ValidatePaths("a.txt", ""), ErrInvalidPath)
	assert.ErrorIs(t, ValidatePath(""), ErrInvalidPath)
}
