package benchmark

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned when an algorithm name has no registered Sorter.
var ErrUnknownAlgorithm = errors.New("unsupported algorithm")

// ConfigError reports an invalid or missing run option. Callers treat it as
// a usage error: nothing has been read or written when it is returned.
type ConfigError struct {
	// Field is the option name without dashes, e.g. "reps".
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Err: fmt.Errorf(format, args...)}
}
