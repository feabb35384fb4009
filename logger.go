package textc

import (
	"log/slog"

	"github.com/gogpu/textc/internal/logging"
)

// SetLogger configures the logger for textc and all its sub-packages.
// By default, textc produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by textc:
//   - [slog.LevelDebug]: per-stage diagnostics (row counts, glyph counts, atlas size)
//   - [slog.LevelInfo]: lifecycle events ("shaping text", "baking atlas", "done")
//   - [slog.LevelWarn]: permissive markup branches (unknown style, dropped user tag)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	textc.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	textc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by textc.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
