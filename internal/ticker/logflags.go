package ticker

import (
	"log"
	"sync/atomic"
)

var traceLogEnabled atomic.Bool

// SetTraceLoggingEnabled toggles verbose logging of engine transitions.
func SetTraceLoggingEnabled(enabled bool) {
	traceLogEnabled.Store(enabled)
}

func isTraceLoggingEnabled() bool {
	return traceLogEnabled.Load()
}

func tracef(format string, args ...any) {
	if !isTraceLoggingEnabled() {
		return
	}
	log.Printf("ticker: "+format, args...)
}
