package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs the process-wide slog default. Output goes to the given
// writers (all of them) or to os.Stderr when none are passed. Format is
// "json" or anything else for text.
func Init(level slog.Level, format string, w ...io.Writer) {
	slog.SetDefault(slog.New(NewHandler(level, format, w...)))
}

// NewHandler builds the handler Init installs.
func NewHandler(level slog.Level, format string, w ...io.Writer) slog.Handler {
	writer := output(w)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(writer, opts)
	}
	return slog.NewTextHandler(writer, opts)
}

func output(w []io.Writer) io.Writer {
	var writers []io.Writer
	for _, item := range w {
		if item != nil {
			writers = append(writers, item)
		}
	}
	switch len(writers) {
	case 0:
		return os.Stderr
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

// ParseLevel maps debug/info/warn/error onto slog levels. Unknown names yield info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// New returns a logger tagged with a component attribute.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
