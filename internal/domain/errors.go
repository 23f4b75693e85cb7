package domain

import "github.com/cockroachdb/errors"

var (
	ErrInputMalformed       = errors.New("input malformed")
	ErrLookupNotFound       = errors.New("lookup not found")
	ErrDataUnavailable      = errors.New("data unavailable")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrCancelled            = errors.New("cancelled")
)

// Unavailable marks err as a DataUnavailable failure while keeping its message.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, ErrDataUnavailable)
}

// NotFound marks err as a LookupNotFound failure while keeping its message.
func NotFound(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, ErrLookupNotFound)
}
