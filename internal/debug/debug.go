// Package debug is the process-wide switch for debug logging.
package debug

import (
	"log"
	"os"
	"sync/atomic"
)

var enabled atomic.Bool

func init() {
	if os.Getenv("VIEWER_DEBUG") == "1" {
		enabled.Store(true)
	}
}

// SetEnabled turns debug logging on or off.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	return enabled.Load()
}

// Logf logs with a "Debug:" prefix when debug logging is on.
func Logf(format string, args ...any) {
	if !enabled.Load() {
		return
	}
	log.Printf("Debug: "+format, args...)
}
