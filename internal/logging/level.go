package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// Verbose lowers level by one step per count: once to info, twice to
// debug. It never raises it.
func Verbose(level slog.Level, count int) slog.Level {
	var want slog.Level
	switch {
	case count <= 0:
		return level
	case count == 1:
		want = slog.LevelInfo
	default:
		want = slog.LevelDebug
	}
	return min(level, want)
}
