// Package csv reads CSV input as a lazy sequence of rows.
//
// Rows come in two shapes:
//
//   - Positional: each row is a []string in field order.
//   - Named: each row is a NamedRow mapping header names to values,
//     in header order.
//
// Input is consumed one line at a time from a LineSource. Each line is
// split on the separator; a field may be quoted with '"', in which case it
// can hold the separator and a doubled quote ("") stands for one quote.
// Fields are trimmed of surrounding blanks, and a line ending in a
// separator does not produce an extra empty column. Quoted fields cannot
// span lines.
//
// # Separator Detection
//
// By default the separator is detected from the header line: the candidate
// among ',', ';', '\t' and ':' that occurs most often wins. A tie, or no
// candidate at all, is a configuration error; the parser never guesses.
// A parser created with an explicit separator instead checks that the
// separator occurs on the header line.
//
// # Thread Safety
//
// A Parser may be shared. Every stream it opens works on its own copy of the
// configuration. A Scanner, NamedScanner or iterator belongs to one
// goroutine.
//
// # Example usage:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	p := csv.NewParser()
//	for row, err := range p.NamedRows(csv.NewLineReader(file)) {
//	    if err != nil {
//	        // handle error
//	    }
//	    name, _ := row.Get("Name")
//	    fmt.Println(name)
//	}
package csv

import (
	"github.com/shapestone/csvrows/internal/parser"
)

// SplitLine splits one line of text into field values using sep.
//
// A quoted field left open at the end of the line takes the rest of the
// line as its value; the fields are returned together with a *ParseError
// wrapping ErrUnterminatedQuote. Well-formed input never fails.
//
// The line need not be valid UTF-8: field values keep the input bytes as
// they are, so Latin-1 text is returned unchanged.
//
// Example:
//
//	fields, err := csv.SplitLine(`a,"b,c",d`, ',')
//	// fields: ["a", "b,c", "d"]
func SplitLine(line string, sep rune) ([]string, error) {
	fields, err := parser.NewParser(sep).ParseLine(line)
	if err != nil {
		return fields, newParseError(1, err)
	}
	return fields, nil
}

// Tokenize splits one line like SplitLine and drops the error, keeping the
// recovered fields.
func Tokenize(line string, sep rune) []string {
	fields, _ := SplitLine(line, sep)
	return fields
}

// Format returns the format identifier for this reader.
func Format() string {
	return "CSV"
}
