// Package csv provides configurable options for CSV row streams.
package csv

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Characteristic is an optional property passed to the parser factories.
type Characteristic int

const (
	// ManualSeparator disables automatic separator detection.
	ManualSeparator Characteristic = iota
	// NoHeader indicates the input has no header line.
	NoHeader
	// NoURLCache asks URL sources not to keep a local cache copy.
	// The parser ignores it; see package source.
	NoURLCache
)

// String returns the string representation of Characteristic.
func (c Characteristic) String() string {
	switch c {
	case ManualSeparator:
		return "manual-separator"
	case NoHeader:
		return "no-header"
	case NoURLCache:
		return "no-url-cache"
	default:
		return "Characteristic(" + strconv.Itoa(int(c)) + ")"
	}
}

// HasCharacteristic reports whether c is among chars.
func HasCharacteristic(chars []Characteristic, c Characteristic) bool {
	for _, ch := range chars {
		if ch == c {
			return true
		}
	}
	return false
}

// Options configures a Parser.
type Options struct {
	// Separator is the field separator.
	// It must be a valid rune and not 0, '"', '\r' or '\n'.
	// Default: ','
	Separator rune

	// DetectSeparator picks the separator from the header line among
	// SeparatorCandidates. Detection only runs when a header line is read.
	// Default: true
	DetectSeparator bool

	// HeaderLine indicates the first line names the columns.
	// Default: true
	HeaderLine bool

	// OnBadLine specifies how lines with an unterminated quote are handled.
	// Default: BadLineModeWarn
	OnBadLine BadLineMode

	// WarningCallback is invoked for recovered lines when OnBadLine is
	// BadLineModeWarn. If nil, the warning goes to Logger.
	WarningCallback WarningHandler

	// HeaderConverter, if set, is applied to every header name.
	HeaderConverter HeaderConverter

	// Logger receives diagnostics. Nil discards them.
	Logger Logger
}

// DefaultOptions returns the default parser configuration.
func DefaultOptions() Options {
	return Options{
		Separator:       ',',
		DetectSeparator: true,
		HeaderLine:      true,
		OnBadLine:       BadLineModeWarn,
	}
}

// validSeparator reports whether r is a valid field separator.
func validSeparator(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks if the options are valid.
// Returns an *OptionsError if they are not.
func (o Options) Validate() error {
	if !validSeparator(o.Separator) {
		return &OptionsError{Field: "Separator", Message: "invalid separator " + strconv.QuoteRune(o.Separator)}
	}
	switch o.OnBadLine {
	case BadLineModeError, BadLineModeWarn, BadLineModeSkip:
	default:
		return &OptionsError{Field: "OnBadLine", Message: "unknown mode " + o.OnBadLine.String()}
	}
	return nil
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return NopLogger()
	}
	return o.Logger
}

// HeaderConverter is a function that transforms header names.
type HeaderConverter func(string) string

// LowercaseHeader converts headers to lowercase.
func LowercaseHeader(s string) string {
	return strings.ToLower(s)
}

// UppercaseHeader converts headers to uppercase.
func UppercaseHeader(s string) string {
	return strings.ToUpper(s)
}

// SnakeCaseHeader converts headers to snake_case.
func SnakeCaseHeader(s string) string {
	var result strings.Builder
	prevWasSpace := false
	for i, ch := range s {
		if ch == ' ' {
			if result.Len() > 0 && !prevWasSpace {
				result.WriteRune('_')
			}
			prevWasSpace = true
			continue
		}
		if unicode.IsUpper(ch) && i > 0 && !prevWasSpace {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(ch))
		prevWasSpace = false
	}
	return result.String()
}
