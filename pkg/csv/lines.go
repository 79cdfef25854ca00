package csv

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// LineSource supplies raw text lines to a row stream.
//
// ReadLine returns the next line without its terminator, or io.EOF once the
// source is exhausted. Any other error is passed to the caller of the row
// stream unchanged. Closing the underlying resource is the caller's job.
type LineSource interface {
	ReadLine() (string, error)
}

// LineReader reads lines from an io.Reader. Lines end at "\n" or "\r\n";
// there is no limit on line length. A UTF-8 byte order mark at the start of
// the input is dropped.
type LineReader struct {
	r     *bufio.Reader
	first bool
	err   error
}

// NewLineReader returns a LineSource reading from r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:     bufio.NewReader(r),
		first: true,
	}
}

// ReadLine implements LineSource.
func (l *LineReader) ReadLine() (string, error) {
	if l.err != nil {
		return "", l.err
	}

	line, err := l.r.ReadString('\n')
	if err != nil {
		// A final line without terminator is still a line.
		if err == io.EOF && line != "" {
			l.err = io.EOF
			return l.trim(line), nil
		}
		l.err = err
		return "", err
	}
	return l.trim(line), nil
}

func (l *LineReader) trim(line string) string {
	if l.first {
		l.first = false
		line = strings.TrimPrefix(line, "\uFEFF")
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

type sliceLines struct {
	lines []string
	pos   int
}

// SliceLines returns a LineSource over an in-memory slice.
func SliceLines(lines []string) LineSource {
	return &sliceLines{lines: lines}
}

func (s *sliceLines) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// SeqSource is a LineSource pulling lines from an iterator.
type SeqSource struct {
	next func() (string, bool)
	stop func()
}

// SeqLines adapts an iterator to a LineSource. The iterator is pulled one
// line at a time and released once it is exhausted. A caller that stops
// reading early must call Close to release it.
func SeqLines(seq iter.Seq[string]) *SeqSource {
	next, stop := iter.Pull(seq)
	return &SeqSource{next: next, stop: stop}
}

func (s *SeqSource) ReadLine() (string, error) {
	line, ok := s.next()
	if !ok {
		s.stop()
		return "", io.EOF
	}
	return line, nil
}

// Close stops the iterator. Further reads return io.EOF. Close may be
// called more than once.
func (s *SeqSource) Close() error {
	s.stop()
	return nil
}

// StringLines returns a LineSource over the lines of s.
func StringLines(s string) LineSource {
	return NewLineReader(strings.NewReader(s))
}
