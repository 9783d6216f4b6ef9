// File: pkg/storage/paths.go
package storage

// Rejects empty local paths and remote keys before any backend call is made
func ValidatePath(path string) error {
	if path == "" {
		return ErrInvalidPath
	}
	return nil
}

// Validates every argument in order and returns the first failure
func ValidatePaths(paths ...string) error {
	for _, p := range paths {
		if err := ValidatePath(p); err != nil {
			return err
		}
	}
	return nil
}
