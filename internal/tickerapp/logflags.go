package tickerapp

import "github.com/edward-ap/miniticker/internal/ticker"

// SetTraceLogEnabled toggles verbose logging of ticker start/stop/cycles.
// Call this before creating the App.
func SetTraceLogEnabled(b bool) { ticker.SetTraceLoggingEnabled(b) }
