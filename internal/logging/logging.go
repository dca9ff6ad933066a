package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	current *zap.SugaredLogger
)

func init() {
	l, err := build("info", "development")
	if err != nil {
		l = zap.NewNop()
	}
	current = l.Sugar()
}

// Init replaces the package logger. level is debug|info|error (anything else
// means info); mode "production" switches to JSON output.
func Init(level, mode string) error {
	l, err := build(level, mode)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	current = l.Sugar()
	return nil
}

func build(level, mode string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if strings.ToLower(mode) == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "error":
		return zapcore.ErrorLevel
	case "debug":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// L returns the package logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// With returns the package logger annotated with key/value pairs.
func With(args ...interface{}) *zap.SugaredLogger {
	return L().With(args...)
}

func Debugf(format string, args ...interface{}) {
	L().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	L().Infof(format, args...)
}

func Errorf(format string, args ...interface{}) {
	L().Errorf(format, args...)
}

// Fatalf logs at fatal level, flushes and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	L().Fatalf(format, args...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}
