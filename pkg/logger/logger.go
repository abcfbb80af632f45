// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Init installs a tint handler as the default slog logger.
func Init(level slog.Level, production bool) *slog.Logger {
	return InitWithWriter(os.Stderr, level, production)
}

func InitWithWriter(w io.Writer, level slog.Level, production bool) *slog.Logger {
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  level <= slog.LevelDebug,
		TimeFormat: time.DateTime,
		NoColor:    production,
	}))
	slog.SetDefault(logger)
	return logger
}
