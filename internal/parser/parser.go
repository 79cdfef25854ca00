// Package parser splits a single CSV line into field values.
//
// It drives the line lexer from internal/tokenizer through a small state
// machine:
//
//	FieldStart  -> InQuoted    on '"' (leading blanks skipped)
//	FieldStart  -> InUnquoted  on anything else
//	InQuoted    -> AfterQuote  on '"'
//	AfterQuote  -> InQuoted    on '"' (escaped quote, emits one '"')
//	AfterQuote  -> FieldStart  on separator
//	InUnquoted  -> FieldStart  on separator
//
// End of line terminates the field in every state. Field values are trimmed
// of surrounding blanks and a single trailing empty field is dropped.
//
// Field text is sliced from the input line rather than rebuilt from token
// runes, so bytes that are not valid UTF-8 pass through unchanged.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/csvrows/internal/tokenizer"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
)

// ErrUnterminatedQuote is reported when a quoted field is still open at
// the end of the line.
var ErrUnterminatedQuote = errors.New("unterminated quoted field")

// Error describes a malformed field within one line.
type Error struct {
	// Column is the 1-based rune column where the offending field starts.
	Column int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("column %d: %v", e.Column, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Parser splits lines on a fixed separator. It keeps a lexer between calls
// and is therefore not safe for concurrent use.
type Parser struct {
	sep      rune
	lexer    shapetokenizer.Tokenizer
	current  *shapetokenizer.Token
	hasToken bool
	column   int // 1-based rune column of current
	next     int // column of the token after current

	line       string
	start, end int // byte span of current within line
}

// NewParser creates a line parser for the given separator.
func NewParser(sep rune) *Parser {
	return &Parser{
		sep:   sep,
		lexer: tokenizer.NewLexerWithSeparator(sep),
	}
}

// Separator returns the separator the parser splits on.
func (p *Parser) Separator() rune {
	return p.sep
}

// ParseLine splits line into trimmed field values.
//
// A quoted field that is not closed before the end of the line keeps the
// rest of the line as its value and an *Error wrapping ErrUnterminatedQuote
// is returned together with the fields. Other input never fails.
func (p *Parser) ParseLine(line string) ([]string, error) {
	p.lexer.Initialize(line)
	p.line = line
	p.column, p.next = 1, 1
	p.start, p.end = 0, 0
	p.advance()

	fields := make([]string, 0, 8)
	var lineErr error

	for {
		value, err := p.parseField()
		if err != nil && lineErr == nil {
			lineErr = err
		}
		fields = append(fields, TrimBlank(value))

		if !p.at(tokenizer.TokenSeparator) {
			break
		}
		p.advance()
	}

	if n := len(fields); n > 0 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	return fields, lineErr
}

// parseField reads one field and leaves the parser on the separator that
// ends it, or past the end of the line.
func (p *Parser) parseField() (string, error) {
	var lead string
	if p.at(tokenizer.TokenText) && isBlank(p.text()) {
		lead = p.text()
		p.advance()
	}

	if p.at(tokenizer.TokenDQuote) {
		return p.parseQuoted()
	}
	return p.parseUnquoted(lead), nil
}

// parseQuoted handles the InQuoted and AfterQuote states.
func (p *Parser) parseQuoted() (string, error) {
	start := p.column
	p.advance() // opening quote

	var value strings.Builder
	for {
		if !p.hasToken {
			return value.String(), &Error{Column: start, Err: ErrUnterminatedQuote}
		}

		switch p.current.Kind() {
		case tokenizer.TokenDQuote:
			p.advance()
			if p.at(tokenizer.TokenDQuote) {
				value.WriteByte('"')
				p.advance()
				continue
			}
			p.appendUntilSeparator(&value)
			return value.String(), nil
		default:
			value.WriteString(p.text())
		}
		p.advance()
	}
}

// parseUnquoted handles the InUnquoted state. Quotes are literal here.
func (p *Parser) parseUnquoted(lead string) string {
	var value strings.Builder
	value.WriteString(lead)
	p.appendUntilSeparator(&value)
	return value.String()
}

// appendUntilSeparator copies tokens verbatim up to the next separator.
func (p *Parser) appendUntilSeparator(value *strings.Builder) {
	for p.hasToken && !p.at(tokenizer.TokenSeparator) {
		value.WriteString(p.text())
		p.advance()
	}
}

func (p *Parser) at(kind string) bool {
	return p.hasToken && p.current.Kind() == kind
}

func (p *Parser) advance() {
	p.column = p.next
	token, ok := p.lexer.NextToken()
	if !ok {
		p.current = nil
		p.hasToken = false
		return
	}
	p.current = token
	p.hasToken = true

	// The lexer decodes each invalid byte as one U+FFFD, the same way
	// DecodeRuneInString steps over it, so rune counts map back to bytes.
	n := utf8.RuneCountInString(token.ValueString())
	p.next = p.column + n
	p.start = p.end
	for ; n > 0 && p.end < len(p.line); n-- {
		_, size := utf8.DecodeRuneInString(p.line[p.end:])
		p.end += size
	}
}

// text returns the input bytes of the current token.
func (p *Parser) text() string {
	return p.line[p.start:p.end]
}

// TrimBlank removes leading and trailing characters at or below U+0020,
// which covers spaces, tabs and other control characters.
func TrimBlank(s string) string {
	return strings.TrimFunc(s, isBlankRune)
}

func isBlank(s string) bool {
	for _, r := range s {
		if !isBlankRune(r) {
			return false
		}
	}
	return true
}

func isBlankRune(r rune) bool {
	return r <= ' '
}
