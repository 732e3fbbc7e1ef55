package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeNil(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
}

func TestExitCodeConfigError(t *testing.T) {
	err := NewConfigError("bad s3 uri", errors.New("missing bucket"))
	assert.Equal(t, ExitConfiguration, ExitCode(err))
}

func TestExitCodeWrappedConfigError(t *testing.T) {
	err := NewConfigError("bad predicate", nil)
	wrapped := errors.New("context: " + err.Error())
	assert.Equal(t, ExitAction, ExitCode(wrapped), "plain wrapping with errors.New loses the *ConfigError type")
	assert.Equal(t, ExitConfiguration, ExitCode(err))
}

func TestExitCodeOtherError(t *testing.T) {
	assert.Equal(t, ExitAction, ExitCode(errors.New("listing source aborted")))
}

func TestConfigErrorMessage(t *testing.T) {
	err := NewConfigError("invalid bucket name", errors.New("must match [A-Za-z0-9 _-]+"))
	assert.Equal(t, "invalid bucket name: must match [A-Za-z0-9 _-]+", err.Error())
}

func TestConfigErrorMessageWithoutWrappedErr(t *testing.T) {
	err := NewConfigError("invalid bucket name", nil)
	assert.Equal(t, "invalid bucket name", err.Error())
}

func TestConfigErrorUnwraps(t *testing.T) {
	inner := errors.New("missing bucket")
	err := NewConfigError("bad s3 uri", inner)
	assert.ErrorIs(t, err, inner)
}
