package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnreadable signals a source table that could not be opened or parsed.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrSnapshotWrite signals a snapshot that could not be persisted.
	ErrSnapshotWrite = errors.New("snapshot write failed")
	// ErrSnapshotRead signals a snapshot that could not be loaded.
	ErrSnapshotRead = errors.New("snapshot read failed")
	// ErrInvalidQuery signals a malformed nearest-neighbor query.
	ErrInvalidQuery = errors.New("invalid query")
)

// SourceError wraps ErrSourceUnreadable with the offending path.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSourceUnreadable.Error(), e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error { return []error{ErrSourceUnreadable, e.Err} }

// NewSourceError creates a source error for path.
func NewSourceError(path string, err error) error {
	return &SourceError{Path: path, Err: err}
}
