package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

var (
	global *Logger
	once   sync.Once
)

// Get returns the process-wide logger. Only the first call's level is used.
func Get(level string) *Logger {
	once.Do(func() {
		global = New(level)
	})
	return global
}

// parseLevel accepts zap level names in any case. Unknown names mean info.
func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
