// Package output writes rows for the csvrows command.
package output

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/segmentio/encoding/json"
	"github.com/shapestone/csvrows/pkg/csv"
)

// Formatter writes a header (optional) followed by rows.
//
// WriteHeader is called at most once, before any row. Flush must be called
// after the last row.
type Formatter interface {
	WriteHeader(headers []string) error
	WriteRow(fields []string) error
	Flush() error
}

// New returns the formatter for name: "table", "jsonl" or "csv". sep is
// the field separator of csv output.
func New(name string, w io.Writer, sep rune) (Formatter, error) {
	switch name {
	case "table":
		return NewTableFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w, sep), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want table, jsonl or csv)", name)
	}
}

// TableFormatter renders rows as an aligned text table. Output is buffered
// until Flush.
type TableFormatter struct {
	table *tablewriter.Table
}

// NewTableFormatter creates a table formatter writing to w.
func NewTableFormatter(w io.Writer) *TableFormatter {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return &TableFormatter{table: table}
}

func (f *TableFormatter) WriteHeader(headers []string) error {
	f.table.SetHeader(headers)
	return nil
}

func (f *TableFormatter) WriteRow(fields []string) error {
	f.table.Append(fields)
	return nil
}

func (f *TableFormatter) Flush() error {
	f.table.Render()
	return nil
}

// JSONFormatter writes one JSON value per line: an object in header order
// when a header was given, an array otherwise.
type JSONFormatter struct {
	w       io.Writer
	headers []string

	// Infer writes numbers and booleans as JSON values instead of strings.
	Infer bool
}

// NewJSONFormatter creates a JSON lines formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) WriteHeader(headers []string) error {
	f.headers = headers
	return nil
}

func (f *JSONFormatter) WriteRow(fields []string) error {
	var (
		b   []byte
		err error
	)
	switch {
	case f.Infer:
		b, err = f.inferred(fields)
	case f.headers != nil:
		b, err = csv.NewNamedRow(f.headers, fields).MarshalJSON()
	default:
		b, err = json.Marshal(fields)
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = f.w.Write(b)
	return err
}

func (f *JSONFormatter) inferred(fields []string) ([]byte, error) {
	if f.headers == nil {
		values := make([]interface{}, len(fields))
		for i, v := range fields {
			values[i] = csv.InferValue(v)
		}
		return json.Marshal(values)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	csv.NewNamedRow(f.headers, fields).Each(func(name, value string) {
		if err != nil {
			return
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		var k, v []byte
		if k, err = json.Marshal(name); err != nil {
			return
		}
		if v, err = json.Marshal(csv.InferValue(value)); err != nil {
			return
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *JSONFormatter) Flush() error {
	return nil
}

// CSVFormatter writes rows back as separated text that csvrows reads
// unchanged.
type CSVFormatter struct {
	w   *bufio.Writer
	sep rune
}

// NewCSVFormatter creates a CSV formatter writing to w.
func NewCSVFormatter(w io.Writer, sep rune) *CSVFormatter {
	return &CSVFormatter{w: bufio.NewWriter(w), sep: sep}
}

func (f *CSVFormatter) WriteHeader(headers []string) error {
	return f.WriteRow(headers)
}

func (f *CSVFormatter) WriteRow(fields []string) error {
	if _, err := f.w.WriteString(csv.JoinLine(fields, f.sep)); err != nil {
		return err
	}
	return f.w.WriteByte('\n')
}

func (f *CSVFormatter) Flush() error {
	return f.w.Flush()
}
