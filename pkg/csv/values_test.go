package csv_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/shapestone/csvrows/pkg/csv"
)

func TestNamedRow_Typed(t *testing.T) {
	row := csv.NewNamedRow(
		[]string{"id", "price", "active", "name"},
		[]string{"42", "9.5", "Yes", "Asti"},
	)

	if v, err := row.Int("id"); err != nil || v != 42 {
		t.Errorf("Int(id) = %d, %v", v, err)
	}
	if v, err := row.Float("price"); err != nil || v != 9.5 {
		t.Errorf("Float(price) = %g, %v", v, err)
	}
	if v, err := row.Bool("active"); err != nil || !v {
		t.Errorf("Bool(active) = %v, %v", v, err)
	}

	if _, err := row.Int("name"); !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("Int(name) error = %v, want ErrSyntax", err)
	}
	if _, err := row.Bool("name"); err == nil {
		t.Error("Bool(name) should fail")
	}
	if _, err := row.Float("missing"); !errors.Is(err, csv.ErrNoColumn) {
		t.Errorf("Float(missing) error = %v, want ErrNoColumn", err)
	}
}

func TestInferValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"", ""},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"3.25", 3.25},
		{"TRUE", true},
		{"false", false},
		{"yes", "yes"},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"2024-01-02", "2024-01-02"},
		{"Asti", "Asti"},
	}
	for _, tt := range tests {
		if got := csv.InferValue(tt.in); got != tt.want {
			t.Errorf("InferValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
