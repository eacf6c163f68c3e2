// Package logging sets up structured logging for va.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the default slog logger on stderr.
// Dev mode uses human-readable text at debug level; otherwise JSON at info.
func Setup(devMode bool) {
	SetupWriter(os.Stderr, devMode)
}

// SetupWriter is Setup with an explicit destination. The interactive panel
// points it away from the terminal it draws on.
func SetupWriter(w io.Writer, devMode bool) {
	slog.SetDefault(slog.New(NewHandler(w, devMode)))
}

// NewHandler returns the handler Setup installs.
func NewHandler(w io.Writer, devMode bool) slog.Handler {
	if devMode {
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
