// Package monitoring holds the process-wide diagnostic logger.
package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// now is swapped in tests.
var now = time.Now

// Stage starts timing a named pipeline stage. Calling the returned function
// logs "[stage] <name> done in <duration>".
//
//	defer monitoring.Stage("render")()
func Stage(name string) func() {
	start := now()
	return func() {
		Logf("[stage] %s done in %s", name, now().Sub(start).Round(time.Microsecond))
	}
}
