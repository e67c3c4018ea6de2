package logger

import (
	"log/slog"
	"os"
)

// New builds the process-wide slog logger. JSON output so log
// aggregators can index fields; level comes from LOG_LEVEL.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if os.Getenv("LOG_LEVEL") == "debug" {
		opts.Level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
