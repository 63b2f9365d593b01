// Package debug provides conditional debug logging for alertguide.
//
// Debug logging is enabled by setting the ALERTGUIDE_DEBUG environment
// variable:
//
//	ALERTGUIDE_DEBUG=1 alertguide
//
// The TUI owns the terminal, so when ALERTGUIDE_LOG_FILE is set messages go
// to that file (rotated by size) instead of stderr. When disabled (default),
// all debug functions are no-ops.
//
// Usage:
//
//	debug.Log("loaded %d steps", n)
//	defer debug.LogEnterExit("reload")()
package debug

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const prefix = "[ALERTGUIDE_DEBUG] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	closer  io.Closer
)

func init() {
	if os.Getenv("ALERTGUIDE_DEBUG") != "" {
		enabled = true
		logger = newLogger(os.Getenv("ALERTGUIDE_LOG_FILE"))
	}
}

func newLogger(file string) *log.Logger {
	var w io.Writer = os.Stderr
	if file != "" {
		lj := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     7,
		}
		closer = lj
		w = lj
	}
	return log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = newLogger("")
	}
}

// SetLogFile routes debug output to a rotating log file. An empty name routes
// it back to stderr.
func SetLogFile(name string) {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		closer.Close()
		closer = nil
	}
	logger = newLogger(name)
}

// SetOutput routes debug output to w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, prefix, 0)
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

func active() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if l := active(); l != nil {
		l.Printf(format, args...)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if l := active(); l != nil {
		l.Printf("%s took %v", name, d)
	}
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("reload")()
func LogEnterExit(name string) func() {
	l := active()
	if l == nil {
		return func() {}
	}
	l.Printf("-> %s", name)
	start := time.Now()
	return func() {
		l.Printf("<- %s (%v)", name, time.Since(start))
	}
}
