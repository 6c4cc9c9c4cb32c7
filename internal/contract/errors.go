package contract

import (
	"errors"
	"fmt"
)

// ConfigErrorKind classifies configuration failures.
type ConfigErrorKind string

// All configuration error kinds.
const (
	UnsupportedVersionKind ConfigErrorKind = "unsupported_version"
	InvalidWeightsKind     ConfigErrorKind = "invalid_weights"
	InvalidThresholdsKind  ConfigErrorKind = "invalid_thresholds"
	InvalidCISettingsKind  ConfigErrorKind = "invalid_ci_settings"
	FileReadKind           ConfigErrorKind = "file_read"
	FileWriteKind          ConfigErrorKind = "file_write"
	InvalidDocumentKind    ConfigErrorKind = "invalid_document"
	EncodingKind           ConfigErrorKind = "encoding"
)

// ConfigError is a fatal configuration failure. It names the offending field
// so the CLI can print an actionable message before aborting.
type ConfigError struct {
	Kind  ConfigErrorKind
	Field string
	Msg   string
	Err   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("config %s (%s): %s: %v", e.Kind, e.Field, e.Msg, e.Err)
	case e.Field != "":
		return fmt.Sprintf("config %s (%s): %s", e.Kind, e.Field, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("config %s: %s: %v", e.Kind, e.Msg, e.Err)
	default:
		return fmt.Sprintf("config %s: %s", e.Kind, e.Msg)
	}
}

// Unwrap exposes the wrapped cause, if any.
func (e *ConfigError) Unwrap() error { return e.Err }

// newConfigError builds a ConfigError with a formatted message.
func newConfigError(kind ConfigErrorKind, field, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// wrapConfigError builds a ConfigError around an underlying cause.
func wrapConfigError(kind ConfigErrorKind, field, msg string, err error) *ConfigError {
	return &ConfigError{Kind: kind, Field: field, Msg: msg, Err: err}
}

// IsConfigErrorKind reports whether err is a ConfigError of the given kind.
func IsConfigErrorKind(err error, kind ConfigErrorKind) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
