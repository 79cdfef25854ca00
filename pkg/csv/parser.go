package csv

import (
	"iter"
	"sync"
)

// Parser holds the configuration for reading rows from line sources.
//
// Each call to Open, OpenNamed, Rows or NamedRows takes a snapshot of the
// configuration, so separator detection in one stream never changes the
// parser or other streams. Setters may be called concurrently with opening
// streams; a stream already open keeps the configuration it started with.
type Parser struct {
	mu   sync.RWMutex
	opts Options
}

// NewParser creates a parser with comma as the initial separator and
// automatic detection enabled, unless chars say otherwise.
//
// Example:
//
//	p := csv.NewParser(csv.NoHeader)
func NewParser(chars ...Characteristic) *Parser {
	opts := DefaultOptions()
	applyCharacteristics(&opts, chars)
	return &Parser{opts: opts}
}

// NewParserWithSeparator creates a parser for a known separator.
// Automatic detection is disabled, as if ManualSeparator were given.
func NewParserWithSeparator(sep rune, chars ...Characteristic) *Parser {
	opts := DefaultOptions()
	applyCharacteristics(&opts, chars)
	opts.Separator = sep
	opts.DetectSeparator = false
	return &Parser{opts: opts}
}

// NewParserWithOptions creates a parser from a full configuration.
func NewParserWithOptions(opts Options) *Parser {
	return &Parser{opts: opts}
}

func applyCharacteristics(opts *Options, chars []Characteristic) {
	if HasCharacteristic(chars, ManualSeparator) {
		opts.DetectSeparator = false
	}
	if HasCharacteristic(chars, NoHeader) {
		opts.HeaderLine = false
	}
}

// Options returns a copy of the current configuration.
func (p *Parser) Options() Options {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts
}

// SetOptions replaces the configuration.
func (p *Parser) SetOptions(opts Options) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts = opts
}

// Separator returns the current separator. The default is ','.
func (p *Parser) Separator() rune {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts.Separator
}

// SetSeparator sets the separator, e.g. ';' or '\t'.
func (p *Parser) SetSeparator(sep rune) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Separator = sep
}

// HeaderLine reports whether the first line is taken as the header.
func (p *Parser) HeaderLine() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts.HeaderLine
}

// SetHeaderLine sets whether the first line is taken as the header.
func (p *Parser) SetHeaderLine(headerLine bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.HeaderLine = headerLine
}

// AutoDetect reports whether the separator is detected from the header.
func (p *Parser) AutoDetect() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts.DetectSeparator
}

// SetAutoDetect enables or disables separator detection.
func (p *Parser) SetAutoDetect(detect bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.DetectSeparator = detect
}

// DetectSeparator runs detection on line and, on success, makes the winner
// the parser's separator. It reports whether detection succeeded; on
// failure the separator is left unchanged.
func (p *Parser) DetectSeparator(line string) bool {
	sep, ok := DetectSeparator(line)
	if ok {
		p.SetSeparator(sep)
	}
	return ok
}

// Tokenize splits line with the parser's current separator.
func (p *Parser) Tokenize(line string) []string {
	return Tokenize(line, p.Separator())
}

// Open returns a Scanner yielding positional rows from src. If the parser
// expects a header line, it is consumed and never returned as a row.
func (p *Parser) Open(src LineSource) (*Scanner, error) {
	opts := p.Options()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Scanner{s: newSession(opts, src, false)}, nil
}

// OpenNamed returns a NamedScanner yielding rows keyed by header name.
// Without a header line it fails immediately with a *ConfigError wrapping
// ErrNoHeader; src is not read.
func (p *Parser) OpenNamed(src LineSource) (*NamedScanner, error) {
	opts := p.Options()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !opts.HeaderLine {
		return nil, &ConfigError{Op: "open named", Separator: opts.Separator, Err: ErrNoHeader}
	}
	return &NamedScanner{s: newSession(opts, src, true)}, nil
}

// Rows returns the positional rows of src as an iterator. The
// configuration is captured now; src is first read when iteration starts.
// Any error is yielded once as the final pair.
//
// Example:
//
//	for row, err := range p.Rows(csv.NewLineReader(file)) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(row)
//	}
func (p *Parser) Rows(src LineSource) iter.Seq2[[]string, error] {
	opts := p.Options()
	return func(yield func([]string, error) bool) {
		sc, err := NewParserWithOptions(opts).Open(src)
		if err != nil {
			yield(nil, err)
			return
		}
		for sc.Scan() {
			if !yield(sc.Row(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// NamedRows returns the rows of src keyed by header name as an iterator.
// A parser without a header line yields a single ErrNoHeader configuration
// error without reading src.
func (p *Parser) NamedRows(src LineSource) iter.Seq2[NamedRow, error] {
	opts := p.Options()
	return func(yield func(NamedRow, error) bool) {
		sc, err := NewParserWithOptions(opts).OpenNamed(src)
		if err != nil {
			yield(NamedRow{}, err)
			return
		}
		for sc.Scan() {
			if !yield(sc.Row(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(NamedRow{}, err)
		}
	}
}
