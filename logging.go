package filecrypt

import (
	"sync"

	"go.uber.org/zap"
)

// Log returns the package's default structured logger. It is built once,
// at package initialization, and read behind defaultLoggerMu, the same
// shape as Caddy's Log()/
// defaultLogger pair in logging.go — except filecrypt has no notion of a
// reloadable logging config, so there is nothing to swap out from under
// callers once built.
func Log() *zap.Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the package's default logger. Tests and embedders
// that want to capture log output (e.g. with zaptest) call this instead
// of relying on the production default.
func SetLogger(l *zap.Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

var (
	defaultLogger, _ = zap.NewProduction()
	defaultLoggerMu  sync.RWMutex
)

func logErrField(err error) zap.Field   { return zap.Error(err) }
func logPathField(path string) zap.Field { return zap.String("path", path) }

