// File: pkg/storage/model.go
package storage

import (
	"fmt"
	"time"

	"unistore/pkg/common"
)

// Outcome of moving one local file to or from a provider
type Transfer struct {
	Provider   common.Provider
	LocalPath  string
	RemotePath string
	// Object URL for uploads; empty for downloads and failures
	URL string
	// A value of -1 indicates that the size is unknown
	Bytes    int64
	Duration time.Duration
	Err      error
}

func (t Transfer) Succeeded() bool {
	return t.Err == nil
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes) // Fallback if extremely large
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
