package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerValidLevel(t *testing.T) {
	logger, err := NewLogger("info")
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, CLILogger)
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, err := NewLogger("not-a-level")
	assert.Error(t, err)
}

func TestNewLoggerAcceptsAllStandardLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := NewLogger(level)
		require.NoError(t, err, level)
		assert.NotNil(t, logger)
	}
}

func TestNewLoggerStampsRunID(t *testing.T) {
	runID := captureRunID(t)
	assert.NotEmpty(t, runID)
}

func TestNewLoggerRunIDVariesPerInvocation(t *testing.T) {
	first := captureRunID(t)
	second := captureRunID(t)
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

// captureRunID redirects os.Stderr to a pipe, builds a fresh logger,
// logs one line, and pulls the run_id field out of the JSON-encoded
// output, exercising the real encoder path instead of inspecting the
// logger's internal state.
func captureRunID(t *testing.T) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stderr
	os.Stderr = w
	logger, err := NewLogger("info")
	os.Stderr = orig
	require.NoError(t, err)

	logger.Info("event")
	require.NoError(t, logger.Sync())
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	line := strings.TrimSpace(strings.SplitN(buf.String(), "\n", 2)[0])
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))

	runID, _ := decoded["run_id"].(string)
	return runID
}
