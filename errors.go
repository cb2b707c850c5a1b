package ecfrag

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader is returned when a buffer's magic word does not
	// match: the buffer is corrupted, was never a fragment buffer, or
	// was already freed. No field is read or written and no memory is
	// released when this is returned.
	ErrInvalidHeader = errors.New("invalid fragment header")

	// ErrInvalidArgument is returned for a nil or released fragment
	// handle, or a slice too short to hold a header. It is reported
	// before any header validation is attempted.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrChecksumMismatch is returned when a payload digest does not
	// match the checksum recorded in the header.
	ErrChecksumMismatch = errors.New("fragment checksum mismatch")

	// ErrUnknownBackend is returned for a backend name or id outside
	// the known set.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrUnknownChecksum is returned for an unregistered checksum type.
	ErrUnknownChecksum = errors.New("unknown checksum type")
)

// HeaderError reports which operation detected a corrupt header.
//
// It unwraps to ErrInvalidHeader, so errors.Is(err, ErrInvalidHeader)
// matches regardless of the detecting operation.
type HeaderError struct {
	// Op names the accessor or lifecycle operation that failed the
	// magic check, e.g. "set idx" or "free fragment".
	Op string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid fragment header (%s)", e.Op)
}

func (e *HeaderError) Unwrap() error { return ErrInvalidHeader }
