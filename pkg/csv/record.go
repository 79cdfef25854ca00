package csv

import (
	"bytes"

	"github.com/segmentio/encoding/json"
)

// NamedRow is a row keyed by header name. Entries keep header order.
//
// A line with fewer fields than headers only has entries for the fields
// present. Fields beyond the last header have no name; they are available
// through Extra and Values.
type NamedRow struct {
	headers []string
	values  []string
}

// NewNamedRow pairs values with headers.
func NewNamedRow(headers, values []string) NamedRow {
	return NamedRow{headers: headers, values: values}
}

// Get returns the value of the named column.
// Returns ("", false) if the column is unknown or absent from this row.
func (r NamedRow) Get(name string) (string, bool) {
	for i, header := range r.names() {
		if header == name {
			return r.values[i], true
		}
	}
	return "", false
}

// At returns the field at the 0-based position, named or not.
func (r NamedRow) At(index int) (string, bool) {
	if index < 0 || index >= len(r.values) {
		return "", false
	}
	return r.values[index], true
}

// Len returns the number of named entries.
func (r NamedRow) Len() int {
	return len(r.names())
}

// Names returns the column names present in this row, in header order.
func (r NamedRow) Names() []string {
	names := r.names()
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Values returns all field values of the line, including unnamed extras.
func (r NamedRow) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Extra returns the fields beyond the last header, if any.
func (r NamedRow) Extra() []string {
	if len(r.values) <= len(r.headers) {
		return nil
	}
	extra := r.values[len(r.headers):]
	out := make([]string, len(extra))
	copy(out, extra)
	return out
}

// Map returns the named entries as a map. Order is lost; use Names to
// iterate in header order.
func (r NamedRow) Map() map[string]string {
	names := r.names()
	m := make(map[string]string, len(names))
	for i, name := range names {
		// First occurrence wins for duplicate header names, matching Get.
		if _, ok := m[name]; !ok {
			m[name] = r.values[i]
		}
	}
	return m
}

// Each calls fn for every named entry in header order.
func (r NamedRow) Each(fn func(name, value string)) {
	for i, name := range r.names() {
		fn(name, r.values[i])
	}
}

// MarshalJSON encodes the named entries as a JSON object in header order.
func (r NamedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// names returns the headers that have a value on this row.
func (r NamedRow) names() []string {
	if len(r.values) < len(r.headers) {
		return r.headers[:len(r.values)]
	}
	return r.headers
}
