package root

import (
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

var logLevel = new(slog.LevelVar)

// newLogger fans records out to a terse stderr handler and a debug-level
// JSON file next to the database. SANCTUARY_DEBUG lowers the stderr level.
func newLogger() *slog.Logger {
	logLevel.Set(slog.LevelWarn)
	if os.Getenv("SANCTUARY_DEBUG") != "" {
		logLevel.Set(slog.LevelDebug)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}),
	}
	if path, err := logFilePath(); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func logFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".clean-sanctuary.log"), nil
}
