package mfcc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every ConfigurationError
	ErrInvalidConfig = errors.New("invalid extraction config")

	// ErrInvalidSignal reports an unusable AudioSignal
	ErrInvalidSignal = errors.New("invalid audio signal")

	// ErrSampleRateMismatch reports a signal whose sample rate differs from
	// the one an Extractor was built for
	ErrSampleRateMismatch = errors.New("sample rate mismatch")
)

// ConfigurationError reports an out-of-range extraction parameter. It is
// returned before any signal processing starts.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid extraction config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidConfig) hold
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

func configError(field string, value any, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}
