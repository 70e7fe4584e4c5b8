package per

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger that receives forward-compatibility events:
// skipped extension groups, unknown CHOICE alternatives and unknown
// enumeration ordinals. It is a no-op logger unless SetLogger was called.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger routes the package's events to l under the name "per".
// Call it before encoding or decoding; a nil l restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l.Named("per")
}

func debugEnabled() bool {
	return Logger().Core().Enabled(zapcore.DebugLevel)
}
