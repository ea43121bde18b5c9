package breach

import (
	"errors"
	"fmt"
)

// ErrLookupFailed is matched by every error Count returns.
var ErrLookupFailed = errors.New("breach lookup failed")

// LookupError describes a failed range lookup.
// StatusCode is zero when no HTTP response was received.
type LookupError struct {
	StatusCode int
	Err        error
}

// Error implements error.
func (e *LookupError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("breach API error: %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("breach API error: %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("breach API error: %v", e.Err)
	default:
		return ErrLookupFailed.Error()
	}
}

// Unwrap returns the underlying cause.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrLookupFailed) true for every LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookupFailed
}
