package linker

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger the assembly pipeline reports through.
// Section finalize, layout and write steps log at Debug. Defaults to a
// no-op logger.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs the pipeline logger. It must be called before any
// section is finalized or written.
func SetLogger(l *zap.Logger) {
	logger = l
}
