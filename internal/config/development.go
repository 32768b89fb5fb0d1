package config

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// Logger writes colored debug output in development and JSON otherwise.
func Logger() *slog.Logger {
	if Development() {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
