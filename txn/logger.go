package txn

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the txn package's logger instance.
// It uses a no-op logger until SetLogger is called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger configures the txn package's logger. It is safe to call while
// other goroutines build or encode transactions; nil restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
