package sql

import (
	"errors"
	"testing"

	"github.com/moojink/RDBMS/pkg/catalog"
)

func condRows(t *testing.T, tbl *catalog.Table) []string {
	t.Helper()
	var out []string
	for r := 1; r <= tbl.NumRows(); r++ {
		v, _ := tbl.Val(r, 1)
		out = append(out, v.Raw)
	}
	return out
}

func TestEvalConds(t *testing.T) {
	in := newTable(t, []string{"id int", "x int", "y float", "s string"},
		[]string{"1", "3", "1.5", "'apple'"},
		[]string{"2", "6", "9.0", "'banana'"},
		[]string{"3", "8", "12.5", "'cherry'"},
		[]string{"4", "NOVALUE", "NaN", "NOVALUE"},
		[]string{"5", "10", "NaN", "'apple'"},
	)

	tests := []struct {
		name  string
		conds []string
		want  []string
	}{
		{"none", nil, []string{"1", "2", "3", "4", "5"}},
		{"greater", []string{"x > 5"}, []string{"2", "3", "5"}},
		{"conjunction", []string{"x > 5", "y < 10"}, []string{"2"}},
		{"conjunction reversed", []string{"y < 10", "x > 5"}, []string{"2"}},
		{"int vs float", []string{"x >= 6.0"}, []string{"2", "3", "5"}},
		{"column vs column", []string{"y > x"}, []string{"2", "3", "5"}},
		{"nan above all", []string{"y > 100"}, []string{"4", "5"}},
		{"nan equals nan", []string{"y == NaN"}, []string{"4", "5"}},
		{"nan not equal", []string{"y != 1.5"}, []string{"2", "3", "4", "5"}},
		{"nan le", []string{"y <= 9.0"}, []string{"1", "2"}},
		{"novalue never matches", []string{"x != 3"}, []string{"2", "3", "5"}},
		{"string equal", []string{"s == 'apple'"}, []string{"1", "5"}},
		{"string order", []string{"s < 'b'"}, []string{"1", "5"}},
		{"string ge", []string{"s >= 'banana'"}, []string{"2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := EvalConds(in, tt.conds)
			if err != nil {
				t.Fatalf("EvalConds(%q) error: %v", tt.conds, err)
			}
			got := condRows(t, out)
			if len(got) != len(tt.want) {
				t.Fatalf("rows = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("rows = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
	if in.NumRows() != 5 {
		t.Error("input table was modified")
	}
}

func TestEvalCondsErrors(t *testing.T) {
	in := newTable(t, []string{"x int", "s string"})

	tests := []struct {
		name  string
		conds []string
		want  error
	}{
		{"glued", []string{"x>5"}, ErrMalformedCond},
		{"too many", []string{"x > 5 6"}, ErrMalformedCond},
		{"bad operator", []string{"x => 5"}, ErrMalformedCond},
		{"equals sign", []string{"x = 5"}, ErrMalformedCond},
		{"unknown column", []string{"z > 5"}, catalog.ErrNoSuchColumn},
		{"literal on left", []string{"5 < x"}, catalog.ErrNoSuchColumn},
		{"unknown right column", []string{"x > q"}, catalog.ErrNoSuchColumn},
		{"bad literal", []string{"x > 5a"}, catalog.ErrInvalidLiteral},
		{"string vs int", []string{"s == 5"}, ErrInvalidOperation},
		{"int vs string", []string{"x < 'a'"}, ErrInvalidOperation},
		{"later conjunct bad", []string{"x > 1", "x >"}, ErrMalformedCond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the table is empty, errors must still surface
			if _, err := EvalConds(in, tt.conds); !errors.Is(err, tt.want) {
				t.Errorf("EvalConds(%q) error = %v, want %v", tt.conds, err, tt.want)
			}
		})
	}
}
