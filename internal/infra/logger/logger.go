// Package logger builds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/finance-tracker/personal-finance/config"
)

// New returns a JSON slog logger writing to stdout and, when a log file is
// configured outside the test environment, to a rotating file as well. The
// returned closer releases the file and is never nil.
func New(cfg *config.LogConfig, environment string) (*slog.Logger, io.Closer) {
	var closer io.Closer = nopCloser{}
	writers := []io.Writer{os.Stdout}

	if cfg.File != "" && environment != "test" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		writers = append(writers, file)
		closer = file
	}

	return newWithWriter(io.MultiWriter(writers...), cfg.Level), closer
}

func newWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
