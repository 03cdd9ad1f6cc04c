package console

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ConsoleLogger implements LoggerInstance using charmbracelet/log for console output.
type ConsoleLogger struct {
	logger *log.Logger
}

// ConsoleLoggerParams contains configuration for creating a ConsoleLogger.
//
// Level accepts debug, info, warn or error and wins over Debug when set.
// JSON switches to one JSON object per line, which suits container logs.
type ConsoleLoggerParams struct {
	Debug  bool
	Level  string
	JSON   bool
	Prefix string
	Output io.Writer
}

// NewConsoleLogger creates a new console logger, writing to stderr unless
// Output is set.
func NewConsoleLogger(params ConsoleLoggerParams) *ConsoleLogger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	if params.Level != "" {
		if parsed, err := log.ParseLevel(strings.ToLower(params.Level)); err == nil {
			level = parsed
		}
	}

	out := params.Output
	if out == nil {
		out = os.Stderr
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          params.Prefix,
	}
	if params.JSON {
		opts.Formatter = log.JSONFormatter
	}

	return &ConsoleLogger{
		logger: log.NewWithOptions(out, opts),
	}
}

// Log writes a message at the default level.
func (c *ConsoleLogger) Log(message string, keyvals ...any) {
	c.logger.Print(message, keyvals...)
}

// Info writes a message at INFO level.
func (c *ConsoleLogger) Info(message string, keyvals ...any) {
	c.logger.Info(message, keyvals...)
}

// Warn writes a message at WARN level.
func (c *ConsoleLogger) Warn(message string, keyvals ...any) {
	c.logger.Warn(message, keyvals...)
}

// Error writes a message at ERROR level.
func (c *ConsoleLogger) Error(message string, keyvals ...any) {
	c.logger.Error(message, keyvals...)
}

// Debug writes a message at DEBUG level.
func (c *ConsoleLogger) Debug(message string, keyvals ...any) {
	c.logger.Debug(message, keyvals...)
}

// Fatal writes a message at FATAL level and terminates the program.
func (c *ConsoleLogger) Fatal(message string, keyvals ...any) {
	c.logger.Fatal(message, keyvals...)
}
