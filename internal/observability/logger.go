// Package observability builds the process-wide zap logger: JSON
// encoding when stdout is piped or redirected (the way a scheduler or
// log-aggregation pipeline consumes it), console encoding when stdout
// is an interactive terminal.
package observability

import (
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is the process-wide logger, initialized by NewLogger and
// used by internal/cmd and pkg/action for diagnostic and status output
// that doesn't belong on stdout's action-result stream.
var CLILogger *zap.Logger = zap.NewNop()

// NewLogger builds a logger at level (one of zap's level names:
// "debug", "info", "warn", "error") with console encoding when stdout
// is a terminal and JSON encoding otherwise. Every line carries a
// run_id generated once per invocation, so diagnostics from a single
// run can be correlated in an aggregated log stream. It also assigns
// the result to CLILogger.
func NewLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if isatty.IsTerminal(os.Stdout.Fd()) {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), lvl)
	logger := zap.New(core).With(zap.String("run_id", uuid.NewString()))
	CLILogger = logger
	return logger, nil
}
