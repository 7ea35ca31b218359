package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger on stderr.
func SetupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// SetupFileLogger configures a logger that appends to path. The fullscreen
// views own the terminal, so anything interactive logs to a file instead
// of stderr.
func SetupFileLogger(path string, debug bool) (*log.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f.Close, nil
}

// SetupDiscardLogger returns a logger that drops everything. Used by the
// interactive views when no log file is configured.
func SetupDiscardLogger() *log.Logger {
	return log.New(io.Discard)
}
