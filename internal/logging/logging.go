package logging

import (
	"bytes"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured. The server only reports errors
// unless asked otherwise, since its stdout belongs to the stdio transport.
const DefaultLevel = "error"

type AppLogger struct {
	logger *log.Logger
	debug  bool
}

var (
	defaultLogger *AppLogger
	once          sync.Once
)

// GetDefault returns the process-wide logger used by Debug, built on first use.
func GetDefault() *AppLogger {
	once.Do(func() {
		defaultLogger = NewAppLogger()
	})
	return defaultLogger
}

// Debug logs through the default logger. It serves code that runs before the
// process logger is configured, such as config loading.
func Debug(msg string, keyvals ...interface{}) {
	GetDefault().Debug(msg, keyvals...)
}

// NewAppLogger builds the process logger at the default level.
func NewAppLogger() *AppLogger {
	return NewAppLoggerWithLevel(DefaultLevel)
}

// NewAppLoggerWithLevel builds the process logger. With DEBUG set in the environment
// everything goes to docmcp.log in the working directory at debug level; otherwise
// records go to stderr at the requested level.
func NewAppLoggerWithLevel(level string) *AppLogger {
	if os.Getenv("DEBUG") != "" {
		cwd, err := os.Getwd()
		if err != nil {
			panic(fmt.Sprintf("Failed to get current working directory: %v", err))
		}

		logPath := filepath.Join(cwd, "docmcp.log")

		// Clear the log file on each run for development
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			panic(fmt.Sprintf("Failed to create debug log file: %v", err))
		}

		logger := log.NewWithOptions(logFile, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "DocMCP",
		})
		logger.SetLevel(log.DebugLevel)
		logger.Info("Debug logging enabled", "log_file", logPath)

		return &AppLogger{logger: logger, debug: true}
	}

	return NewWriterLogger(os.Stderr, level)
}

// NewWriterLogger creates a logger that writes timestamped records to w.
// Unknown levels fall back to DefaultLevel.
func NewWriterLogger(w io.Writer, level string) *AppLogger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = log.ErrorLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "DocMCP",
	})
	logger.SetLevel(lvl)

	return &AppLogger{
		logger: logger,
		debug:  lvl <= log.DebugLevel,
	}
}

// ParseLevel maps a configured level name onto a log level.
func ParseLevel(level string) (log.Level, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.ErrorLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// With returns a child logger that attaches keyvals to every record.
func (al *AppLogger) With(keyvals ...interface{}) *AppLogger {
	return &AppLogger{
		logger: al.logger.With(keyvals...),
		debug:  al.debug,
	}
}

// Log application events
func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

// StandardLog adapts the logger for libraries that take a *log.Logger. Lines
// written through it are recorded at error level.
func (al *AppLogger) StandardLog() *stdlog.Logger {
	return al.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
}

// IsDebug reports whether debug records are emitted.
func (al *AppLogger) IsDebug() bool {
	return al.debug
}

// Log a bubbletea message (debug only)
func (al *AppLogger) LogMessage(msg tea.Msg) {
	if !al.debug {
		return
	}

	al.logger.Debug("Message received",
		"type", fmt.Sprintf("%T", msg),
		"content", fmt.Sprintf("%+v", msg),
	)
}

// Log performance metrics
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		duration := time.Since(start)
		al.logger.Debug("Performance",
			"operation", operation,
			"duration", duration,
		)
	}
}

// Testing Helper - NewTestLogger creates a logger that writes to a buffer for testing
func NewTestLogger() (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false, // Easier to test without timestamps
		ReportCaller:    false,
		Prefix:          "Test",
	})
	logger.SetLevel(log.DebugLevel)

	return &AppLogger{
		logger: logger,
		debug:  true,
	}, &buf
}
