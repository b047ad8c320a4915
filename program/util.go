package program

import (
	"context"
	"log/slog"
)

// LevelTrace sits just above Info so generation traces can be filtered on
// their own.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
