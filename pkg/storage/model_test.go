// File: pkg/storage/model_test.go
package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-1, "N/A"},
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "FormatBytes(%d)", tt.in)
	}
}

func TestTransfer_Succeeded(t *testing.T) {
	assert.True(t, Transfer{URL: "https://example"}.Succeeded())
	assert.False(t, Transfer{Err: errors.New("boom")}.Succeeded())
}
