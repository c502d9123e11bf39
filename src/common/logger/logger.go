package logger

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	DEFAULT_LOG_LEVEL = "INFO"
	LOG_FORMAT        = `%{time:2006-01-02 15:04:05.000} [%{color}%{level:.5s}%{color:reset}] %{module}: %{message}`
)

var initialized bool

// InitGlobalLogger installs the stderr backend shared by every module logger.
// Calling it again after a successful initialization is a no-op.
func InitGlobalLogger(logLevel string) error {
	if initialized {
		return nil
	}

	if err := InitLoggerWithWriter(os.Stderr, logLevel); err != nil {
		return err
	}

	initialized = true
	return nil
}

// InitLoggerWithWriter replaces the logging backend with one writing to out.
// An empty level falls back to DEFAULT_LOG_LEVEL.
func InitLoggerWithWriter(out io.Writer, logLevel string) error {
	if strings.TrimSpace(logLevel) == "" {
		logLevel = DEFAULT_LOG_LEVEL
	}

	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}

	backend := logging.NewLogBackend(out, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(LOG_FORMAT))

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

// GetLoggerWithPrefix returns the logger for a module, e.g. "[LEDGER]".
func GetLoggerWithPrefix(prefix string) *logging.Logger {
	return logging.MustGetLogger(prefix)
}
