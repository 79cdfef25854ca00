package csv

import (
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shapestone/csvrows/internal/parser"
)

// session is one pass over a line source with a fixed configuration.
// Header handling and separator detection run once, on the first pull.
type session struct {
	id      string
	opts    Options
	src     LineSource
	named   bool
	log     Logger
	parser  *parser.Parser
	headers []string
	line    int
	started bool
	done    bool
	err     error
}

func newSession(opts Options, src LineSource, named bool) *session {
	return &session{
		id:     uuid.NewString(),
		opts:   opts,
		src:    src,
		named:  named,
		log:    opts.logger(),
		parser: parser.NewParser(opts.Separator),
	}
}

// start runs setup on the first call and reports whether rows may follow.
func (s *session) start() bool {
	if s.started {
		return !s.done && s.err == nil
	}
	s.started = true

	if err := s.setup(); err != nil {
		s.err = err
		s.log.Error("session %s: %v", s.id, err)
		return false
	}
	return !s.done
}

func (s *session) setup() error {
	if !s.opts.HeaderLine && !s.named {
		s.log.Debug("session %s: no header, separator %q", s.id, s.parser.Separator())
		return nil
	}

	header, err := s.src.ReadLine()
	if errors.Is(err, io.EOF) {
		s.done = true
		return nil
	}
	if err != nil {
		return err
	}
	s.line++

	sep := s.opts.Separator
	if s.opts.DetectSeparator {
		detected, err := NewSniffer(header).DetectSeparator()
		if err != nil {
			return &ConfigError{Op: "detect", Separator: sep, Err: err}
		}
		sep = detected
	} else if !strings.ContainsRune(header, sep) {
		return &ConfigError{Op: "open", Separator: sep, Err: ErrSeparatorMissing}
	}
	if sep != s.parser.Separator() {
		s.parser = parser.NewParser(sep)
	}

	if !s.named {
		s.log.Debug("session %s: header skipped, separator %q", s.id, sep)
		return nil
	}

	headers, err := s.parser.ParseLine(header)
	if err != nil && !s.recover(err) {
		return s.err
	}
	if conv := s.opts.HeaderConverter; conv != nil {
		for i, h := range headers {
			headers[i] = conv(h)
		}
	}
	s.headers = headers
	s.log.Debug("session %s: %d columns, separator %q", s.id, len(headers), sep)
	return nil
}

// next returns the fields of the next data line.
func (s *session) next() ([]string, bool) {
	if !s.start() {
		return nil, false
	}

	for {
		line, err := s.src.ReadLine()
		if errors.Is(err, io.EOF) {
			s.done = true
			return nil, false
		}
		if err != nil {
			s.err = err
			return nil, false
		}
		s.line++

		fields, err := s.parser.ParseLine(line)
		if err != nil {
			if !s.recover(err) {
				return nil, false
			}
			if s.opts.OnBadLine == BadLineModeSkip {
				continue
			}
		}
		return fields, true
	}
}

// recover applies the bad line policy to a malformed line. It returns false
// when the stream must stop, with s.err set.
func (s *session) recover(err error) bool {
	perr := newParseError(s.line, err)
	switch s.opts.OnBadLine {
	case BadLineModeSkip:
		s.log.Debug("session %s: skipped: %v", s.id, perr)
		return true
	case BadLineModeWarn:
		if s.opts.WarningCallback != nil {
			s.opts.WarningCallback(s.line, perr.Error())
		} else {
			s.log.Info("session %s: %v", s.id, perr)
		}
		return true
	default:
		s.err = perr
		return false
	}
}

// Scanner reads positional rows one at a time.
//
// Example usage:
//
//	scanner, err := csv.NewParser().Open(csv.NewLineReader(file))
//	if err != nil {
//	    // handle error
//	}
//	for scanner.Scan() {
//	    fmt.Println(scanner.Row())
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
//
// A Scanner is forward-only and not safe for concurrent use.
type Scanner struct {
	s   *session
	row []string
}

// Scan advances to the next row. It returns false at the end of the input
// or on error; Err tells the two apart. Setup, including separator
// detection, happens on the first call.
func (sc *Scanner) Scan() bool {
	row, ok := sc.s.next()
	sc.row = row
	return ok
}

// Row returns the current row. It is only valid after Scan returned true.
func (sc *Scanner) Row() []string {
	return sc.row
}

// Err returns the error that stopped the scan, or nil at end of input.
// Errors from the line source are returned unchanged.
func (sc *Scanner) Err() error {
	return sc.s.err
}

// Separator returns the separator in use. After the first Scan it reflects
// the result of detection.
func (sc *Scanner) Separator() rune {
	return sc.s.parser.Separator()
}

// Line returns the 1-based input line number of the current row.
func (sc *Scanner) Line() int {
	return sc.s.line
}

// ID returns the session identifier used in log output.
func (sc *Scanner) ID() string {
	return sc.s.id
}

// NamedScanner reads rows keyed by header name one at a time.
// A NamedScanner is forward-only and not safe for concurrent use.
type NamedScanner struct {
	s   *session
	row NamedRow
}

// Scan advances to the next row. The header line is read on the first
// call and never returned as a row.
func (sc *NamedScanner) Scan() bool {
	fields, ok := sc.s.next()
	if !ok {
		sc.row = NamedRow{}
		return false
	}
	sc.row = NewNamedRow(sc.s.headers, fields)
	return true
}

// Row returns the current row. It is only valid after Scan returned true.
func (sc *NamedScanner) Row() NamedRow {
	return sc.row
}

// Err returns the error that stopped the scan, or nil at end of input.
func (sc *NamedScanner) Err() error {
	return sc.s.err
}

// Headers returns the column names, available after the first Scan.
func (sc *NamedScanner) Headers() []string {
	out := make([]string, len(sc.s.headers))
	copy(out, sc.s.headers)
	return out
}

// Separator returns the separator in use.
func (sc *NamedScanner) Separator() rune {
	return sc.s.parser.Separator()
}

// Line returns the 1-based input line number of the current row.
func (sc *NamedScanner) Line() int {
	return sc.s.line
}

// ID returns the session identifier used in log output.
func (sc *NamedScanner) ID() string {
	return sc.s.id
}
