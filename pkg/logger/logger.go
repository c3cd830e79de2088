// Package logger holds the process-wide zap logger.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

// Init builds the logger for env ("development" uses the console encoder)
// at the given level and installs it as the package logger.
func Init(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	Set(l)
	return l, nil
}

func Set(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Sync() { _ = L().Sync() }
