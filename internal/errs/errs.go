// Package errs maps the error taxonomy of spec §7 onto process exit
// codes: configuration/argument errors exit 2, any other fatal error
// exits 1, success exits 0. Tag-fetch and per-item action errors never
// reach this package — they are logged and absorbed at the layer that
// produced them; a listing error that aborts the stream does, and exits 1.
package errs

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

const (
	// ExitSuccess is returned for a nil error.
	ExitSuccess = 0
	// ExitAction is returned for any fatal, non-configuration error:
	// a listing source that aborts the stream, or a handler-fatal
	// action error.
	ExitAction = 1
	// ExitConfiguration is returned for an invalid S3 path, predicate
	// spec, or flag combination, caught before any I/O.
	ExitConfiguration = 2
)

// ConfigError marks an error detected before any I/O: a malformed
// s3:// URI, an unparsable predicate, or an invalid flag combination.
// Wrap errors in this type to route them to ExitConfiguration.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err (which may be nil) as a configuration error.
func NewConfigError(message string, err error) error {
	return &ConfigError{Message: message, Err: err}
}

// ExitCode maps err to the process exit code spec §6 requires.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfiguration
	}
	return ExitAction
}

// Fatal logs err at Error level and exits the process with the code
// ExitCode(err) maps it to. cmd/s3find's main() does not call it: it
// exits with the code cmd.Execute returns, which is ExitCode applied to
// the command tree's error.
func Fatal(logger *zap.Logger, err error) {
	if err == nil {
		return
	}
	logger.Error(err.Error())
	os.Exit(ExitCode(err))
}
