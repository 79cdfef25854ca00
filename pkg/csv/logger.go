package csv

import (
	"io"
	"log"
)

// Logger receives diagnostic output from row streams.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// StandardLogger writes to a standard library *log.Logger.
type StandardLogger struct {
	logger  *log.Logger
	verbose bool
}

// NewStandardLogger creates a logger writing to w. Debug output is only
// written when verbose is true.
func NewStandardLogger(w io.Writer, verbose bool) *StandardLogger {
	return &StandardLogger{
		logger:  log.New(w, "[csvrows] ", log.LstdFlags),
		verbose: verbose,
	}
}

func (l *StandardLogger) Info(format string, v ...interface{}) {
	l.logger.Printf("INFO: "+format, v...)
}

func (l *StandardLogger) Error(format string, v ...interface{}) {
	l.logger.Printf("ERROR: "+format, v...)
}

func (l *StandardLogger) Debug(format string, v ...interface{}) {
	if l.verbose {
		l.logger.Printf("DEBUG: "+format, v...)
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}
