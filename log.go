package hellogl

import (
	"log/slog"
	"os"
)

// logLevel controls the level for hellogl logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

// logger is the package logger. Diagnostics for shader and texture
// failures go here.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetVerbose enables or disables debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// SetLogger replaces the package logger and returns the previous one.
// A nil logger restores the default stderr logger.
func SetLogger(l *slog.Logger) *slog.Logger {
	prev := logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	}
	logger = l
	return prev
}

// Logger returns the package logger so backends log through the same handler.
func Logger() *slog.Logger {
	return logger
}
