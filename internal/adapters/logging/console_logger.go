package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/andrescamacho/traveller-trade-go/internal/application/common"
	"github.com/andrescamacho/traveller-trade-go/internal/infrastructure/config"
)

// ConsoleLogger writes run log entries through slog
type ConsoleLogger struct {
	logger *slog.Logger
	closer io.Closer
}

var _ common.RunLogger = (*ConsoleLogger)(nil)

// NewConsoleLogger builds a logger from the logging config. Close it to
// release a log file.
func NewConsoleLogger(cfg config.LoggingConfig) (*ConsoleLogger, error) {
	var out io.Writer
	var closer io.Closer
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
		}
		out, closer = f, f
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	return NewConsoleLoggerTo(out, cfg.Format, cfg.Level, closer), nil
}

// NewConsoleLoggerTo writes to w in format "json" or "text"
func NewConsoleLoggerTo(w io.Writer, format, level string, closer io.Closer) *ConsoleLogger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &ConsoleLogger{logger: slog.New(handler), closer: closer}
}

// Slog exposes the underlying logger for adapters that log directly
func (l *ConsoleLogger) Slog() *slog.Logger {
	return l.logger
}

// Log maps the run logger levels (DEBUG, INFO, WARNING, ERROR) onto slog.
// Metadata keys are sorted so output is stable.
func (l *ConsoleLogger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, metadata[k])
	}
	l.logger.Log(context.Background(), ParseLevel(level), message, args...)
}

func (l *ConsoleLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ParseLevel accepts the run logger and config level names, case-insensitively.
// Unknown names log at info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
