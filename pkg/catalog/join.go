package catalog

import (
	"errors"
	"fmt"
)

// ErrNoTables is returned when a join is requested over zero tables.
var ErrNoTables = errors.New("join needs at least one table")

// Join computes the natural inner join of a and b. Columns are matched by
// name; the output holds the shared columns first, then the remaining
// columns of a, then those of b. Without shared columns the result is the
// cartesian product with a as the outer loop.
func Join(a, b *Table) (*Table, error) {
	var shared, leftOnly, rightOnly []Column
	for _, c := range a.cols {
		bc, ok := b.Column(c.Name)
		switch {
		case !ok:
			leftOnly = append(leftOnly, c)
		case bc.Type != c.Type:
			return nil, fmt.Errorf("%w: column %s is %s in one table and %s in the other",
				ErrTypeMismatch, c.Name, c.Type, bc.Type)
		default:
			shared = append(shared, c)
		}
	}
	for _, c := range b.cols {
		if _, ok := a.index[c.Name]; !ok {
			rightOnly = append(rightOnly, c)
		}
	}

	cols := make([]Column, 0, len(shared)+len(leftOnly)+len(rightOnly))
	cols = append(cols, shared...)
	cols = append(cols, leftOnly...)
	cols = append(cols, rightOnly...)
	out, err := NewTable("", cols)
	if err != nil {
		return nil, err
	}

	sharedNames := make([]string, len(shared))
	for i, c := range shared {
		sharedNames[i] = c.Name
	}

	for i := 1; i <= a.rows; i++ {
		keyA := a.project(i, sharedNames)
		restA, err := a.RestOfRow(i, sharedNames)
		if err != nil {
			return nil, err
		}
		for j := 1; j <= b.rows; j++ {
			if !equalValues(keyA, b.project(j, sharedNames)) {
				continue
			}
			restB, err := b.RestOfRow(j, sharedNames)
			if err != nil {
				return nil, err
			}
			row := make([]Value, 0, len(cols))
			row = append(row, keyA...)
			row = append(row, restA...)
			row = append(row, restB...)
			if err := out.AddRow(row); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// JoinAll folds Join over tables from left to right. A single table is
// returned unchanged.
func JoinAll(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	acc := tables[0]
	for _, t := range tables[1:] {
		var err error
		if acc, err = Join(acc, t); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// project returns the cells of row n in the given column order.
func (t *Table) project(n int, names []string) []Value {
	out := make([]Value, len(names))
	for i, name := range names {
		out[i], _ = t.ValByName(n, name)
	}
	return out
}

func equalValues(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
