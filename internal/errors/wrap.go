package errors

import (
	"github.com/cockroachdb/errors"
)

// Marker errors used to classify failures with errors.Is.
var (
	// ErrFetch marks transport-level failures (DNS, connection, timeout).
	ErrFetch = errors.New("fetch failed")
	// ErrStatus marks responses with an unexpected HTTP status code.
	ErrStatus = errors.New("unexpected status")
	// ErrParse marks documents that could not be parsed.
	ErrParse = errors.New("parse failed")
)

// Wrap - Wrap err with a context message. Returns nil when err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Wrapf - Wrap err with a formatted context message. Returns nil when err is nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// Mark - Tag err with a marker so that errors.Is(err, marker) holds.
// The message of err is left unchanged.
func Mark(err error, marker error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, marker)
}

// Is - Report whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
