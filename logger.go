package sketch

import (
	"log/slog"

	"github.com/gogpu/sketch/recording"
	"github.com/gogpu/sketch/text"
)

// SetLogger configures the logger for sketch and all its sub-packages.
// By default, sketch produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by sketch:
//   - [slog.LevelDebug]: playback, backend selection, font loading
//   - [slog.LevelWarn]: lossy output (gradients in PDF/EPS, EPS transparency)
//
// Example:
//
//	sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	recording.SetLogger(l)
	text.SetLogger(l)
}

// Logger returns the current logger used by sketch.
// Backends share it through the recording package.
func Logger() *slog.Logger {
	return recording.Logger()
}
