package csv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNoColumn is returned by the typed NamedRow accessors when the column
// is unknown or absent from the row.
var ErrNoColumn = errors.New("no such column")

// Int returns the named column parsed as a base 10 integer.
func (r NamedRow) Int(name string) (int64, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("csv: column %q: %w", name, err)
	}
	return i, nil
}

// Float returns the named column parsed as a float64.
func (r NamedRow) Float(name string) (float64, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("csv: column %q: %w", name, err)
	}
	return f, nil
}

// Bool returns the named column as a bool.
// Recognizes: true/false, 1/0, yes/no, y/n, on/off, t/f (case-insensitive)
func (r NamedRow) Bool(name string) (bool, error) {
	v, err := r.lookup(name)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	default:
		return false, fmt.Errorf("csv: column %q: cannot convert %q to bool", name, v)
	}
}

func (r NamedRow) lookup(name string) (string, error) {
	v, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("csv: column %q: %w", name, ErrNoColumn)
	}
	return v, nil
}

// InferValue returns value as a bool, int64 or float64 when it reads as
// one, and unchanged otherwise. Only "true" and "false" count as bools;
// NaN and infinities stay strings.
func InferValue(value string) interface{} {
	if value == "" {
		return value
	}

	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return value
}
