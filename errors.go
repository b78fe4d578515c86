package lumen

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes. Every error returned by
// this package wraps exactly one of them, so callers can classify with
// errors.Is.
var (
	// ErrConfiguration indicates invalid or inconsistent logger
	// parameters, detected at construction time.
	ErrConfiguration = errors.New("lumen: configuration error")

	// ErrFilesystem indicates a failed file or console operation: open,
	// write, rename, remove, sync, or lock.
	ErrFilesystem = errors.New("lumen: filesystem error")

	// ErrEncoding indicates a record that cannot be represented in the
	// configured text encoding.
	ErrEncoding = errors.New("lumen: encoding error")
)

// configError wraps a formatted message with ErrConfiguration.
func configError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfiguration}, args...)...)
}

// fsError wraps a formatted message with ErrFilesystem.
func fsError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrFilesystem}, args...)...)
}

// encodingError wraps a formatted message with ErrEncoding.
func encodingError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrEncoding}, args...)...)
}

// combineErrors merges two possibly-nil errors into one.
func combineErrors(err1, err2 error) error {
	switch {
	case err1 == nil:
		return err2
	case err2 == nil:
		return err1
	default:
		return fmt.Errorf("%w; %w", err1, err2)
	}
}
