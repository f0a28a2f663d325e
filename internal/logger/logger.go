// Package logger configures the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// LogLevel holds the runtime-adjustable log level.
	LogLevel = zap.NewAtomicLevel()
	// Logger is the global structured logger.
	Logger *zap.Logger
)

func init() {
	config := zap.NewProductionConfig()
	config.Level = LogLevel

	// Logs go to stdout so the hosting platform can collect them.
	config.OutputPaths = []string{"stdout"}

	config.EncoderConfig = zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var err error
	Logger, err = config.Build()
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(Logger)
}

// SetLevel adjusts the global log level at runtime. Unknown names fall
// back to info.
func SetLevel(level string) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	LogLevel.SetLevel(parsed)
}
