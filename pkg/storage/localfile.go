// File: pkg/storage/localfile.go
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Mode for newly created downloads, before the umask; an existing file keeps its own mode
const downloadPerm = 0o666

// Writes a downloaded object to localPath. fill receives a pending file in the same directory
// that replaces localPath only when fill succeeds, so a partial download is never left there.
func WriteFile(localPath string, fill func(f *os.File) error) error {
	pending, err := renameio.NewPendingFile(localPath,
		renameio.WithTempDir(filepath.Dir(localPath)),
		renameio.WithPermissions(downloadPerm),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("error creating local file: %w", err)
	}
	defer pending.Cleanup()

	if err := fill(pending.File); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("error moving local file into place: %w", err)
	}
	return nil
}

// Opens a local file for upload together with its size. The caller owns the handle
func OpenFile(localPath string) (*os.File, int64, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, fmt.Errorf("%s is a directory", localPath)
	}
	return f, info.Size(), nil
}
