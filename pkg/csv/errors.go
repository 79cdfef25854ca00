// Package csv provides error types and recovery modes for CSV row streams.
package csv

import (
	"errors"
	"fmt"

	"github.com/shapestone/csvrows/internal/parser"
)

// BadLineMode specifies how a row stream handles malformed lines.
type BadLineMode int

const (
	// BadLineModeError stops the stream with a *ParseError.
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn reports a warning and yields the recovered row (default).
	BadLineModeWarn
	// BadLineModeSkip silently drops malformed lines.
	BadLineModeSkip
)

// String returns the string representation of BadLineMode.
func (m BadLineMode) String() string {
	switch m {
	case BadLineModeError:
		return "error"
	case BadLineModeWarn:
		return "warn"
	case BadLineModeSkip:
		return "skip"
	default:
		return fmt.Sprintf("BadLineMode(%d)", m)
	}
}

// Configuration errors. They are reported wrapped in a *ConfigError.
var (
	// ErrNoHeader indicates named rows were requested from a parser that
	// does not expect a header line.
	ErrNoHeader = errors.New("named rows require a header line")

	// ErrSeparatorAmbiguous indicates two or more candidate separators
	// occur equally often on the header line.
	ErrSeparatorAmbiguous = errors.New("cannot detect separator: ambiguous candidates")

	// ErrSeparatorNotFound indicates no candidate separator occurs on the
	// header line.
	ErrSeparatorNotFound = errors.New("cannot detect separator: no candidate found")

	// ErrSeparatorMissing indicates the configured separator does not occur
	// on the header line.
	ErrSeparatorMissing = errors.New("header line does not contain the separator")
)

// ErrUnterminatedQuote indicates a quoted field still open at end of line.
var ErrUnterminatedQuote = parser.ErrUnterminatedQuote

// ConfigError reports a configuration that cannot be applied to the input.
// It is returned before any row is yielded.
type ConfigError struct {
	// Op is the operation that failed, e.g. "open" or "detect".
	Op string
	// Separator is the separator in effect when the error occurred.
	Separator rune
	// Err is one of the Err* configuration sentinels.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("csv: %s (separator %q): %v", e.Op, e.Separator, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError represents a malformed line with position information.
type ParseError struct {
	// Line is the 1-based input line number.
	Line int
	// Column is the 1-based rune column where the bad field starts.
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError converts a line parser error into a *ParseError.
func newParseError(line int, err error) *ParseError {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &ParseError{Line: line, Column: perr.Column, Err: perr.Err}
	}
	return &ParseError{Line: line, Err: err}
}

// WarningHandler is a callback function for reporting recovered lines.
type WarningHandler func(line int, message string)

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
