package sql

import (
	"fmt"
	"math"
	"strconv"

	"github.com/moojink/RDBMS/pkg/catalog"
)

// operand is either a column of the input table or a constant.
type operand struct {
	column string // raw column name, empty for a literal
	lit    catalog.Value
	typ    catalog.DataType
}

func (o operand) value(t *catalog.Table, row int) catalog.Value {
	if o.column == "" {
		return o.lit
	}
	v, _ := t.ValByName(row, o.column)
	return v
}

// columnOperand resolves tok as a column of t.
func columnOperand(t *catalog.Table, tok string) (operand, error) {
	if _, ok := t.AddType(tok); !ok {
		return operand{}, fmt.Errorf("%w: %s", catalog.ErrNoSuchColumn, tok)
	}
	col, _ := t.Column(tok)
	return operand{column: tok, typ: col.Type}, nil
}

// resolveOperand treats tok as a column if t has one by that name, and as
// a literal otherwise. NaN is accepted as a numeric constant.
func resolveOperand(t *catalog.Table, tok string) (operand, error) {
	if _, ok := t.AddType(tok); ok {
		return columnOperand(t, tok)
	}
	switch {
	case tok == catalog.NaNLiteral:
		return operand{lit: catalog.NaN(catalog.TypeFloat), typ: catalog.TypeFloat}, nil
	case tok == catalog.NoValueLiteral:
		return operand{}, fmt.Errorf("%w: %s has no type", catalog.ErrInvalidLiteral, tok)
	case catalog.ValidIdentifier(tok):
		return operand{}, fmt.Errorf("%w: %s", catalog.ErrNoSuchColumn, tok)
	}
	v, err := catalog.LiteralValue(tok)
	if err != nil {
		return operand{}, err
	}
	return operand{lit: v, typ: v.Type}, nil
}

// projection produces one output column.
type projection struct {
	col   catalog.Column
	left  operand
	op    string // empty for a plain column copy
	right operand
}

// EvalExprs evaluates a select list over t and returns the projected
// table. A lone "*" returns t itself. Every item is checked before any
// row is computed, so a bad item yields no partial result.
func EvalExprs(t *catalog.Table, exprs []string) (*catalog.Table, error) {
	if len(exprs) == 1 && exprs[0] == "*" {
		return t, nil
	}

	projs := make([]projection, 0, len(exprs))
	for _, item := range exprs {
		p, err := parseProjection(t, item)
		if err != nil {
			return nil, err
		}
		projs = append(projs, p)
	}

	cols := make([]catalog.Column, len(projs))
	for i, p := range projs {
		cols[i] = p.col
	}
	out, err := catalog.NewTable("", cols)
	if err != nil {
		return nil, err
	}

	for r := 1; r <= t.NumRows(); r++ {
		row := make([]catalog.Value, len(projs))
		for i, p := range projs {
			if p.op == "" {
				row[i] = p.left.value(t, r)
				continue
			}
			row[i] = arith(p.op, p.left.value(t, r), p.right.value(t, r), p.col.Type)
		}
		if err := out.AddRow(row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseProjection(t *catalog.Table, item string) (projection, error) {
	tokens := Tokenize(normalizeExpr(item))
	switch {
	case len(tokens) == 1:
		left, err := columnOperand(t, tokens[0])
		if err != nil {
			return projection{}, err
		}
		return projection{col: catalog.Column{Name: tokens[0], Type: left.typ}, left: left}, nil

	case len(tokens) == 5 && tokens[3] == "as":
		left, err := columnOperand(t, tokens[0])
		if err != nil {
			return projection{}, err
		}
		right, err := resolveOperand(t, tokens[2])
		if err != nil {
			return projection{}, err
		}
		typ, err := arithType(tokens[1], left.typ, right.typ)
		if err != nil {
			return projection{}, err
		}
		alias := tokens[4]
		if !catalog.ValidIdentifier(alias) {
			return projection{}, fmt.Errorf("%w: bad column name %q", ErrMalformedExpr, alias)
		}
		return projection{
			col:   catalog.Column{Name: alias, Type: typ},
			left:  left,
			op:    tokens[1],
			right: right,
		}, nil

	default:
		return projection{}, fmt.Errorf("%w: %s", ErrMalformedExpr, item)
	}
}

// arithType checks that op applies to the operand types and returns the
// type of the result.
func arithType(op string, l, r catalog.DataType) (catalog.DataType, error) {
	switch op {
	case "+", "-", "*", "/":
	default:
		return catalog.TypeUnknown, fmt.Errorf("%w: unknown operator %q", ErrMalformedExpr, op)
	}
	switch {
	case l == catalog.TypeString && r == catalog.TypeString:
		if op != "+" {
			return catalog.TypeUnknown, fmt.Errorf("%w: strings only support +", ErrInvalidOperation)
		}
		return catalog.TypeString, nil
	case l.IsNumeric() && r.IsNumeric():
		if l == catalog.TypeFloat || r == catalog.TypeFloat {
			return catalog.TypeFloat, nil
		}
		return catalog.TypeInt, nil
	default:
		return catalog.TypeUnknown, fmt.Errorf("%w: %s %s %s", ErrInvalidOperation, l, op, r)
	}
}

// arith applies op to a and b, producing a value of type res.
func arith(op string, a, b catalog.Value, res catalog.DataType) catalog.Value {
	if a.IsNaN() || b.IsNaN() {
		return catalog.NaN(res)
	}
	if a.IsNoValue() && b.IsNoValue() {
		return catalog.NoValue(res)
	}

	if res == catalog.TypeString {
		var sa, sb string
		if !a.IsNoValue() {
			sa = a.Unquoted()
		}
		if !b.IsNoValue() {
			sb = b.Unquoted()
		}
		return catalog.Value{Type: catalog.TypeString, Raw: "'" + sa + sb + "'"}
	}

	x, y := floatOf(a), floatOf(b)
	var f float64
	switch op {
	case "+":
		f = x + y
	case "-":
		f = x - y
	case "*":
		f = x * y
	case "/":
		if y == 0 {
			return catalog.NaN(res)
		}
		f = x / y
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return catalog.NaN(res)
	}
	if res == catalog.TypeInt {
		// int results are the truncated float result; +0 drops a negative zero
		return catalog.Value{Type: res, Raw: strconv.FormatFloat(math.Trunc(f)+0, 'f', 0, 64)}
	}
	return catalog.Value{Type: res, Raw: strconv.FormatFloat(f, 'f', 3, 64)}
}

// floatOf reads a numeric cell; NOVALUE counts as zero.
func floatOf(v catalog.Value) float64 {
	if v.IsNoValue() {
		return 0
	}
	f, _ := strconv.ParseFloat(v.Raw, 64)
	return f
}
