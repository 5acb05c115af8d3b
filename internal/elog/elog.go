// Package elog is the CLI's logging wrapper: a thin layer over the
// standard library's log.Logger, matching the plain log.Printf/Fatalf
// convention used throughout the example corpus's cmd/ tools rather
// than pulling in a structured-logging dependency no command here
// needs.
package elog

import (
	"io"
	"log"
	"os"
)

// Logger wraps *log.Logger with the two verbosity levels the pipeline
// needs: per-locus progress (Debugf, silenced unless verbose) and
// unconditional warnings.
type Logger struct {
	*log.Logger
	verbose bool
}

// New returns a Logger writing to w with the standard date and time
// flags (log.LstdFlags), the same flags the standard library's default
// logger uses.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{Logger: log.New(w, "", log.LstdFlags), verbose: verbose}
}

// Default returns a Logger writing to os.Stderr.
func Default(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// Debugf logs at debug level; a no-op unless the Logger was created
// with verbose=true.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.Printf(format, args...)
}

// Warnf always logs, prefixed to distinguish it from Debugf output.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Printf("warning: "+format, args...)
}
