package source

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSource is returned for an identifier that is empty after trimming.
	// No I/O is attempted for such identifiers.
	ErrInvalidSource = errors.New("invalid source")
	// ErrSourceUnavailable is returned when a source can't be read or fetched,
	// including timeouts, cancellation and non-success HTTP statuses.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// Error records a failed resolution step and the locator it concerned.
type Error struct {
	// Op is the step that failed: normalize, classify, read or fetch.
	Op      string
	Locator string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Locator, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func unavailable(op, locator string, cause error) error {
	return &Error{Op: op, Locator: locator, Err: fmt.Errorf("%w: %w", ErrSourceUnavailable, cause)}
}
