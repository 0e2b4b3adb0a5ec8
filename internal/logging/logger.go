package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
// Development runs also emit debug records.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(newJSONHandler(os.Stdout, levelFor(appEnv))))
}

// Attach routes records to stdout and to every sink.
func Attach(appEnv string, sinks ...slog.Handler) {
	handlers := append([]slog.Handler{newJSONHandler(os.Stdout, levelFor(appEnv))}, sinks...)
	slog.SetDefault(slog.New(NewMultiHandler(handlers...)))
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func levelFor(appEnv string) slog.Level {
	if appEnv == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
