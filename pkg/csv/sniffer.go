// Package csv provides separator detection.
package csv

import (
	"strings"
)

// separatorCandidates are the separators considered by detection, in
// reporting order.
var separatorCandidates = []rune{',', ';', '\t', ':'}

// SeparatorCandidates returns the separators considered by detection.
func SeparatorCandidates() []rune {
	out := make([]rune, len(separatorCandidates))
	copy(out, separatorCandidates)
	return out
}

// Sniffer detects the separator used on a single line, usually the header.
//
// Occurrences are plain character counts: a candidate inside a quoted
// field counts the same as one between fields.
type Sniffer struct {
	line   string
	counts []int
}

// NewSniffer creates a Sniffer for line.
func NewSniffer(line string) *Sniffer {
	s := &Sniffer{
		line:   line,
		counts: make([]int, len(separatorCandidates)),
	}
	for i, sep := range separatorCandidates {
		s.counts[i] = strings.Count(line, string(sep))
	}
	return s
}

// Count returns how often sep occurs on the line. Non-candidates are
// counted as well.
func (s *Sniffer) Count(sep rune) int {
	for i, c := range separatorCandidates {
		if c == sep {
			return s.counts[i]
		}
	}
	return strings.Count(s.line, string(sep))
}

// DetectSeparator returns the candidate with the strictly highest count.
// It returns ErrSeparatorNotFound when no candidate occurs and
// ErrSeparatorAmbiguous when the highest count is shared.
func (s *Sniffer) DetectSeparator() (rune, error) {
	best, bestCount, ties := rune(0), 0, 0
	for i, sep := range separatorCandidates {
		switch n := s.counts[i]; {
		case n > bestCount:
			best, bestCount, ties = sep, n, 1
		case n == bestCount && n > 0:
			ties++
		}
	}

	switch {
	case bestCount == 0:
		return 0, ErrSeparatorNotFound
	case ties > 1:
		return 0, ErrSeparatorAmbiguous
	}
	return best, nil
}

// DetectSeparator picks the separator used on line among
// SeparatorCandidates. It reports false when no candidate occurs or when
// the highest count is shared; it never falls back to a default.
//
// Example:
//
//	sep, ok := csv.DetectSeparator("AA;BB;CC") // ';', true
func DetectSeparator(line string) (rune, bool) {
	sep, err := NewSniffer(line).DetectSeparator()
	return sep, err == nil
}
