package csv_test

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/shapestone/csvrows/pkg/csv"
)

func TestNewParser_Defaults(t *testing.T) {
	p := csv.NewParser()
	if p.Separator() != ',' {
		t.Errorf("Separator() = %q, want ','", p.Separator())
	}
	if !p.AutoDetect() {
		t.Error("AutoDetect() = false, want true")
	}
	if !p.HeaderLine() {
		t.Error("HeaderLine() = false, want true")
	}
}

func TestNewParser_Characteristics(t *testing.T) {
	p := csv.NewParser(csv.ManualSeparator, csv.NoHeader)
	if p.AutoDetect() {
		t.Error("ManualSeparator should disable detection")
	}
	if p.HeaderLine() {
		t.Error("NoHeader should clear HeaderLine")
	}

	p = csv.NewParserWithSeparator(';')
	if p.Separator() != ';' {
		t.Errorf("Separator() = %q, want ';'", p.Separator())
	}
	if p.AutoDetect() {
		t.Error("an explicit separator should disable detection")
	}
	if !p.HeaderLine() {
		t.Error("HeaderLine() = false, want true")
	}
}

func TestParser_Setters(t *testing.T) {
	p := csv.NewParser()
	p.SetSeparator('\t')
	p.SetAutoDetect(false)
	p.SetHeaderLine(false)

	if p.Separator() != '\t' || p.AutoDetect() || p.HeaderLine() {
		t.Errorf("setters not applied: %+v", p.Options())
	}

	opts := csv.DefaultOptions()
	opts.Separator = ':'
	p.SetOptions(opts)
	if p.Separator() != ':' || !p.AutoDetect() {
		t.Errorf("SetOptions not applied: %+v", p.Options())
	}
}

func TestParser_Tokenize(t *testing.T) {
	p := csv.NewParserWithSeparator(';')
	if got := p.Tokenize(`a;"b;c"`); !reflect.DeepEqual(got, []string{"a", "b;c"}) {
		t.Errorf("Tokenize() = %q", got)
	}
}

func TestParser_Rows(t *testing.T) {
	p := csv.NewParser()

	var rows [][]string
	for row, err := range p.Rows(csv.SliceLines([]string{"H1,H2", "1,2", "3,4"})) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rows = append(rows, row)
	}

	want := [][]string{{"1", "2"}, {"3", "4"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %q, want %q", rows, want)
	}
}

func TestParser_RowsEarlyStop(t *testing.T) {
	src := &countingSource{lines: []string{"h", "1", "2", "3"}}
	p := csv.NewParserWithSeparator(',', csv.NoHeader)

	for row, err := range p.Rows(src) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if row[0] == "2" {
			break
		}
	}
	if src.reads != 3 {
		t.Errorf("read %d lines, want 3", src.reads)
	}
}

func TestParser_RowsConfigError(t *testing.T) {
	p := csv.NewParser()

	var errs []error
	rows := 0
	for row, err := range p.Rows(csv.SliceLines([]string{"a:b,c", "1,2"})) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_ = row
		rows++
	}
	if rows != 0 {
		t.Errorf("got %d rows, want 0", rows)
	}
	if len(errs) != 1 || !errors.Is(errs[0], csv.ErrSeparatorAmbiguous) {
		t.Errorf("errors = %v, want one ErrSeparatorAmbiguous", errs)
	}
}

func TestParser_NamedRows(t *testing.T) {
	p := csv.NewParser()

	var got []map[string]string
	var order [][]string
	for row, err := range p.NamedRows(csv.SliceLines([]string{"Name,Age", "Asti,30"})) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, row.Map())
		order = append(order, row.Names())
	}

	if !reflect.DeepEqual(got, []map[string]string{{"Name": "Asti", "Age": "30"}}) {
		t.Errorf("rows = %v", got)
	}
	if !reflect.DeepEqual(order, [][]string{{"Name", "Age"}}) {
		t.Errorf("order = %q, want Name before Age", order)
	}
}

func TestParser_NamedRowsNoHeader(t *testing.T) {
	src := &countingSource{lines: []string{"a,b"}}
	p := csv.NewParser(csv.NoHeader)

	n := 0
	for _, err := range p.NamedRows(src) {
		n++
		if !errors.Is(err, csv.ErrNoHeader) {
			t.Errorf("err = %v, want ErrNoHeader", err)
		}
	}
	if n != 1 {
		t.Errorf("yielded %d pairs, want 1", n)
	}
	if src.reads != 0 {
		t.Errorf("read %d lines, want 0", src.reads)
	}
}

func TestParser_RowsCapturesOptions(t *testing.T) {
	p := csv.NewParserWithSeparator(';')
	seq := p.Rows(csv.SliceLines([]string{"a;b", "1;2"}))
	p.SetSeparator(',')

	var rows [][]string
	for row, err := range seq {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rows = append(rows, row)
	}
	if !reflect.DeepEqual(rows, [][]string{{"1", "2"}}) {
		t.Errorf("rows = %q", rows)
	}
}

func TestParser_ConcurrentSessions(t *testing.T) {
	p := csv.NewParser()
	inputs := [][]string{
		{"a,b", "1,2"},
		{"a;b", "1;2"},
		{"a\tb", "1\t2"},
		{"a:b", "1:2"},
	}

	done := make(chan []string, len(inputs))
	for _, lines := range inputs {
		go func(lines []string) {
			for row, err := range p.Rows(csv.SliceLines(lines)) {
				if err != nil {
					done <- nil
					return
				}
				done <- row
			}
		}(lines)
	}

	for range inputs {
		row := <-done
		if !slices.Equal(row, []string{"1", "2"}) {
			t.Errorf("row = %q, want [1 2]", row)
		}
	}
}
