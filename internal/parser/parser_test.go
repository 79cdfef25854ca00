package parser

import (
	"errors"
	"reflect"
	"testing"
)

// TestParseLine_Fields tests field splitting with the default separator.
func TestParseLine_Fields(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFields []string
	}{
		{
			name:       "empty line",
			input:      "",
			wantFields: []string{},
		},
		{
			name:       "single field",
			input:      "hello",
			wantFields: []string{"hello"},
		},
		{
			name:       "three fields",
			input:      "a,b,c",
			wantFields: []string{"a", "b", "c"},
		},
		{
			name:       "empty middle field",
			input:      "a,,c",
			wantFields: []string{"a", "", "c"},
		},
		{
			name:       "trailing separator drops one empty field",
			input:      "a,b,",
			wantFields: []string{"a", "b"},
		},
		{
			name:       "two trailing separators keep one empty field",
			input:      "a,b,,",
			wantFields: []string{"a", "b", ""},
		},
		{
			name:       "only separators",
			input:      ",,",
			wantFields: []string{"", ""},
		},
		{
			name:       "leading empty field",
			input:      ",b",
			wantFields: []string{"", "b"},
		},
		{
			name:       "surrounding blanks trimmed",
			input:      "  a ,\tb\t, c",
			wantFields: []string{"a", "b", "c"},
		},
		{
			name:       "blank last field is dropped",
			input:      "a,   ",
			wantFields: []string{"a"},
		},
		{
			name:       "quoted field",
			input:      `"hello"`,
			wantFields: []string{"hello"},
		},
		{
			name:       "quoted field with separator",
			input:      `"a,b",c`,
			wantFields: []string{"a,b", "c"},
		},
		{
			name:       "doubled quote",
			input:      `"a""b"`,
			wantFields: []string{`a"b`},
		},
		{
			name:       "quoted content is trimmed",
			input:      `" x ",y`,
			wantFields: []string{"x", "y"},
		},
		{
			name:       "blanks around quoted field",
			input:      `a,  "b,c"  ,d`,
			wantFields: []string{"a", "b,c", "d"},
		},
		{
			name:       "text after closing quote is kept",
			input:      `"ab"cd,e`,
			wantFields: []string{"abcd", "e"},
		},
		{
			name:       "quote inside unquoted field is literal",
			input:      `ab"c,d`,
			wantFields: []string{`ab"c`, "d"},
		},
		{
			name:       "empty quoted field in the middle",
			input:      `a,"",c`,
			wantFields: []string{"a", "", "c"},
		},
		{
			name:       "empty quoted field alone collapses",
			input:      `""`,
			wantFields: []string{},
		},
		{
			name:       "only escaped quotes",
			input:      `""""`,
			wantFields: []string{`"`},
		},
		{
			name:       "unicode content",
			input:      "città,perché",
			wantFields: []string{"città", "perché"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(',')
			got, err := p.ParseLine(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.input, got, tt.wantFields)
			}
		})
	}
}

// TestParseLine_Separators tests separators other than comma.
func TestParseLine_Separators(t *testing.T) {
	tests := []struct {
		name       string
		sep        rune
		input      string
		wantFields []string
	}{
		{"semicolon", ';', "a;b,c;d", []string{"a", "b,c", "d"}},
		{"tab", '\t', "a\t b \tc", []string{"a", "b", "c"}},
		{"colon", ':', `x:"y:z"`, []string{"x", "y:z"}},
		{"pipe", '|', "a|b|c", []string{"a", "b", "c"}},
		{"dot", '.', `1.2."3.4"`, []string{"1", "2", "3.4"}},
		{"star", '*', "a*b", []string{"a", "b"}},
		{"backslash", '\\', `a\b\`, []string{"a", "b"}},
		{"bracket", '[', "a[b", []string{"a", "b"}},
		{"non-ASCII", '§', "α§β", []string{"α", "β"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(tt.sep)
			if p.Separator() != tt.sep {
				t.Fatalf("Separator() = %q, want %q", p.Separator(), tt.sep)
			}
			got, err := p.ParseLine(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.input, got, tt.wantFields)
			}
		})
	}
}

// TestParseLine_InvalidUTF8 tests that bytes outside UTF-8, such as Latin-1
// text, come back exactly as they were read.
func TestParseLine_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name       string
		sep        rune
		input      string
		wantFields []string
	}{
		{"bare bytes", ',', "\xff,\xfe", []string{"\xff", "\xfe"}},
		{"latin-1 words", ';', "citt\xe0;perch\xe9", []string{"citt\xe0", "perch\xe9"}},
		{"quoted latin-1", ',', "\"citt\xe0, s\xec\",x", []string{"citt\xe0, s\xec", "x"}},
		{"trimmed around bytes", ',', "  \xe0 ,b", []string{"\xe0", "b"}},
		{"encoded replacement char kept", ',', "\uFFFD\xff,b", []string{"\uFFFD\xff", "b"}},
		{"non-ASCII separator", '§', "\xe9§\xe8", []string{"\xe9", "\xe8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser(tt.sep).ParseLine(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.input, got, tt.wantFields)
			}
		})
	}

	// Each invalid byte counts as one column.
	_, err := NewParser(',').ParseLine("\xff\xfe,\"x")
	var perr *Error
	if !errors.As(err, &perr) || perr.Column != 4 {
		t.Errorf("ParseLine() error = %v, want column 4", err)
	}
}

// TestParseLine_Unterminated tests the recovery policy for open quotes.
func TestParseLine_Unterminated(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFields []string
		wantColumn int
	}{
		{
			name:       "open quote at start",
			input:      `"abc`,
			wantFields: []string{"abc"},
			wantColumn: 1,
		},
		{
			name:       "rest of line including separators",
			input:      `a,"b,c`,
			wantFields: []string{"a", "b,c"},
			wantColumn: 3,
		},
		{
			name:       "doubled quotes still collapse",
			input:      `x,"say ""hi""`,
			wantFields: []string{"x", `say "hi"`},
			wantColumn: 3,
		},
		{
			name:       "column counts runes",
			input:      `é,"b`,
			wantFields: []string{"é", "b"},
			wantColumn: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(',')
			got, err := p.ParseLine(tt.input)
			if !errors.Is(err, ErrUnterminatedQuote) {
				t.Fatalf("expected ErrUnterminatedQuote, got %v", err)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if perr.Column != tt.wantColumn {
				t.Errorf("Column = %d, want %d", perr.Column, tt.wantColumn)
			}
			if !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.input, got, tt.wantFields)
			}
		})
	}
}

// TestParseLine_Reuse tests that state does not leak between lines.
func TestParseLine_Reuse(t *testing.T) {
	p := NewParser(',')

	if _, err := p.ParseLine(`"open`); err == nil {
		t.Fatal("expected error for unterminated quote")
	}

	got, err := p.ParseLine("a,b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %q", got)
	}
}

func TestTrimBlank(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{" a ", "a"},
		{"\ta b\r", "a b"},
		{"\x00x\x1f", "x"},
		{"\u00a0x", "\u00a0x"},
	}
	for _, tt := range tests {
		if got := TrimBlank(tt.in); got != tt.want {
			t.Errorf("TrimBlank(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestError(t *testing.T) {
	err := &Error{Column: 4, Err: ErrUnterminatedQuote}
	if got, want := err.Error(), "column 4: unterminated quoted field"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnterminatedQuote) {
		t.Error("errors.Is should see ErrUnterminatedQuote")
	}
}
