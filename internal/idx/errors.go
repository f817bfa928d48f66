package idx

import (
	"errors"
	"fmt"
)

// Decode failure kinds. Every error returned by this package wraps exactly one
// of them, so callers can branch with errors.Is.
var (
	ErrStreamOpenFailed  = errors.New("idx: stream could not be opened")
	ErrTruncatedStream   = errors.New("idx: stream ended before the declared length")
	ErrBadMagic          = errors.New("idx: unexpected magic number")
	ErrInvalidDimensions = errors.New("idx: invalid dimensions")
	ErrAllocationFailed  = errors.New("idx: payload buffer could not be allocated")
)

// DecodeError describes a failed decode.
type DecodeError struct {
	Op      string // Operation that failed (e.g., "decode images", "open")
	Path    string // File path, empty for caller-supplied streams
	Err     error  // One of the Err* sentinels
	Cause   error  // Underlying I/O error, if any
	Details string // Additional details
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	msg = fmt.Sprintf("%s: %v", msg, e.Err)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the sentinel and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// withPath returns err annotated with path when it is a *DecodeError.
func withPath(err error, path string) error {
	var de *DecodeError
	if errors.As(err, &de) && de.Path == "" {
		de.Path = path
	}
	return err
}
