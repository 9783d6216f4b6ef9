// File: pkg/storage/errors.go
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Operation names used in wrapped error messages
const (
	OpUpload   = "upload file"
	OpPresign  = "generate pre-signed URL"
	OpDownload = "download file"
	OpDelete   = "delete file"
	OpCreate   = "create storage provider"
)

var (
	ErrInvalidPath         = errors.New("Invalid path provided")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrNoBody              = errors.New("No body in response")
)

// Error is the single failure kind surfaced by validators, the factory and every provider
// operation. Callers tell causes apart by message, or with errors.Is against the sentinels above.
type Error struct {
	Msg string
	Err error

	kind error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// Wraps a failure of the named operation as "Failed to <op>: <cause>"
func WrapOpError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Msg: "Failed to " + op, Err: err}
}

func NewConfigError(providerName string, missing []string) error {
	msg := fmt.Sprintf("Invalid %s configuration: missing required fields", providerName)
	if len(missing) > 0 {
		msg += " (" + strings.Join(missing, ", ") + ")"
	}
	return &Error{Msg: msg, kind: ErrInvalidConfig}
}

func NewUnsupportedProviderError(tag string) error {
	return &Error{Msg: "Unsupported provider: " + tag, kind: ErrUnsupportedProvider}
}
