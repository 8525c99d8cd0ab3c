package common

import (
	"fmt"
	"log"
	"os"
)

var debugLogger *log.Logger

// SetDebug toggles verbose logging. Release builds keep it off so log files
// only carry warnings and failures.
func SetDebug(enabled bool) {
	if enabled {
		debugLogger = log.New(os.Stdout, "", log.LstdFlags)
		return
	}
	debugLogger = nil
}

// DebugEnabled reports whether verbose logging is on.
func DebugEnabled() bool {
	return debugLogger != nil
}

// Debugf logs only when debug logging is enabled.
func Debugf(tag, format string, v ...any) {
	if debugLogger == nil {
		return
	}
	debugLogger.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}

// Logf always logs.
func Logf(tag, format string, v ...any) {
	log.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}
