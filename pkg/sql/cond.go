package sql

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/moojink/RDBMS/pkg/catalog"
)

// condition is one parsed where conjunct.
type condition struct {
	left  operand
	op    string
	right operand
}

// EvalConds keeps the rows of t that satisfy every conjunct. All conjuncts
// are parsed and type checked first; per row they are tested in order and
// testing stops at the first one that fails. With no conjuncts t is
// returned as is.
func EvalConds(t *catalog.Table, conds []string) (*catalog.Table, error) {
	if len(conds) == 0 {
		return t, nil
	}

	parsed := make([]condition, 0, len(conds))
	for _, c := range conds {
		pc, err := parseCondition(t, c)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, pc)
	}

	out, err := catalog.NewTable("", t.Columns())
	if err != nil {
		return nil, err
	}
	for r := 1; r <= t.NumRows(); r++ {
		if !matchesAll(t, r, parsed) {
			continue
		}
		row, err := t.RowValues(r)
		if err != nil {
			return nil, err
		}
		if err := out.AddRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func matchesAll(t *catalog.Table, row int, conds []condition) bool {
	for _, c := range conds {
		if !compare(c.op, c.left.value(t, row), c.right.value(t, row)) {
			return false
		}
	}
	return true
}

func parseCondition(t *catalog.Table, text string) (condition, error) {
	tokens := Tokenize(text)
	if len(tokens) != 3 {
		return condition{}, fmt.Errorf("%w: %s", ErrMalformedCond, text)
	}
	switch tokens[1] {
	case "==", "!=", "<", ">", "<=", ">=":
	default:
		return condition{}, fmt.Errorf("%w: unknown operator %q", ErrMalformedCond, tokens[1])
	}
	left, err := columnOperand(t, tokens[0])
	if err != nil {
		return condition{}, err
	}
	right, err := resolveOperand(t, tokens[2])
	if err != nil {
		return condition{}, err
	}
	stringy := left.typ == catalog.TypeString && right.typ == catalog.TypeString
	numeric := left.typ.IsNumeric() && right.typ.IsNumeric()
	if !stringy && !numeric {
		return condition{}, fmt.Errorf("%w: cannot compare %s with %s", ErrInvalidOperation, left.typ, right.typ)
	}
	return condition{left: left, op: tokens[1], right: right}, nil
}

// compare applies a comparison operator. A NOVALUE on either side never
// matches.
func compare(op string, a, b catalog.Value) bool {
	if a.IsNoValue() || b.IsNoValue() {
		return false
	}
	var c int
	if a.Type == catalog.TypeString {
		c = strings.Compare(a.Unquoted(), b.Unquoted())
	} else {
		c = compareNumeric(a, b)
	}
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	}
	return false
}

// compareNumeric orders numeric cells. NaN sorts above every number and
// equals only itself.
func compareNumeric(a, b catalog.Value) int {
	switch {
	case a.IsNaN() && b.IsNaN():
		return 0
	case a.IsNaN():
		return 1
	case b.IsNaN():
		return -1
	}
	return cmp.Compare(floatOf(a), floatOf(b))
}
