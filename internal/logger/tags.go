package logger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// logTagAtLevel is logAtLevel with a tag attribute attached; the tag feeds
// the filtering handler.
func logTagAtLevel(level slog.Level, tag, format string, args ...interface{}) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(slog.String(tagKey, tag))
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// DebugTagf logs a tagged debug message.
func DebugTagf(tag, format string, args ...interface{}) {
	logTagAtLevel(slog.LevelDebug, tag, format, args...)
}

// InfoTagf logs a tagged info message.
func InfoTagf(tag, format string, args ...interface{}) {
	logTagAtLevel(slog.LevelInfo, tag, format, args...)
}

// WarnTagf logs a tagged warning message.
func WarnTagf(tag, format string, args ...interface{}) {
	logTagAtLevel(slog.LevelWarn, tag, format, args...)
}

// ErrorTagf logs a tagged error message.
func ErrorTagf(tag, format string, args ...interface{}) {
	logTagAtLevel(slog.LevelError, tag, format, args...)
}
