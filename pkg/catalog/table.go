package catalog

import (
	"fmt"
	"strings"
)

// Table is an in-memory relation stored column by column. Row 0 is the
// header; data rows are numbered from 1.
type Table struct {
	name  string
	cols  []Column
	data  [][]Value // data[col][row-1]
	index map[string]int
	rows  int
}

// NewTable creates an empty table with the given columns. Column names
// must be valid identifiers and unique within the table.
func NewTable(name string, cols []Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table needs at least one column", ErrInvalidSchema)
	}
	t := &Table{
		name:  name,
		cols:  make([]Column, len(cols)),
		data:  make([][]Value, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if !ValidIdentifier(c.Name) {
			return nil, fmt.Errorf("%w: invalid column name %q", ErrInvalidSchema, c.Name)
		}
		if c.Type == TypeUnknown {
			return nil, fmt.Errorf("%w: column %q has no type", ErrInvalidSchema, c.Name)
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, c.Name)
		}
		t.cols[i] = c
		t.index[c.Name] = i
	}
	return t, nil
}

// NewTableFromHeader creates an empty table from "name type" header tokens.
func NewTableFromHeader(name string, header []string) (*Table, error) {
	cols := make([]Column, 0, len(header))
	for _, key := range header {
		c, err := ParseColumn(key)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return NewTable(name, cols)
}

// Name returns the table name, which may be empty for intermediate results.
func (t *Table) Name() string { return t.name }

// SetName renames the table.
func (t *Table) SetName(name string) { t.name = name }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return t.rows }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.cols) }

// Columns returns a copy of the column definitions in order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// Header returns the "name type" keys of all columns.
func (t *Table) Header() []string {
	keys := make([]string, len(t.cols))
	for i, c := range t.cols {
		keys[i] = c.Key()
	}
	return keys
}

// lookup resolves a raw column name or a "name type" key to its index.
func (t *Table) lookup(name string) (int, bool) {
	if i, ok := t.index[name]; ok {
		return i, true
	}
	if raw, typ, found := strings.Cut(name, " "); found {
		if i, ok := t.index[raw]; ok && t.cols[i].Type.String() == typ {
			return i, true
		}
	}
	return 0, false
}

// Column returns the definition of the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.lookup(name)
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// AddType resolves a bare column name to its "name type" key.
func (t *Table) AddType(raw string) (string, bool) {
	i, ok := t.index[raw]
	if !ok {
		return "", false
	}
	return t.cols[i].Key(), true
}

// AddRow appends a row of typed values. The row is rejected as a whole if
// its length differs from the column count or any value is not valid for
// its column.
func (t *Table) AddRow(vals []Value) error {
	if len(vals) != len(t.cols) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrRowArity, len(vals), len(t.cols))
	}
	for i, v := range vals {
		if v.Type != t.cols[i].Type || !ValidLiteral(v.Raw, v.Type) {
			return fmt.Errorf("%w: %s is not a valid %s for column %s",
				ErrTypeMismatch, v.Raw, t.cols[i].Type, t.cols[i].Name)
		}
	}
	for i, v := range vals {
		t.data[i] = append(t.data[i], v)
	}
	t.rows++
	return nil
}

// AddRowLiterals parses each literal against its column type and appends
// the row. Nothing is appended on error.
func (t *Table) AddRowLiterals(lits []string) error {
	if len(lits) != len(t.cols) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrRowArity, len(lits), len(t.cols))
	}
	vals := make([]Value, len(lits))
	for i, lit := range lits {
		v, err := ParseValue(lit, t.cols[i].Type)
		if err != nil {
			return fmt.Errorf("column %s: %w", t.cols[i].Name, err)
		}
		vals[i] = v
	}
	return t.AddRow(vals)
}

// Row returns the rendered cells of row n. Row 0 is the header.
func (t *Table) Row(n int) ([]string, error) {
	if n == 0 {
		return t.Header(), nil
	}
	vals, err := t.RowValues(n)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.Raw
	}
	return out, nil
}

// RowValues returns the typed cells of data row n (1-based).
func (t *Table) RowValues(n int) ([]Value, error) {
	if n < 1 || n > t.rows {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, n)
	}
	out := make([]Value, len(t.cols))
	for i := range t.cols {
		out[i] = t.data[i][n-1]
	}
	return out, nil
}

// Col returns a copy of column i (1-based).
func (t *Table) Col(i int) ([]Value, error) {
	if i < 1 || i > len(t.cols) {
		return nil, fmt.Errorf("%w: column index %d", ErrNoSuchColumn, i)
	}
	out := make([]Value, t.rows)
	copy(out, t.data[i-1])
	return out, nil
}

// ColByName returns a copy of the named column.
func (t *Table) ColByName(name string) ([]Value, error) {
	i, ok := t.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchColumn, name)
	}
	return t.Col(i + 1)
}

// Val returns the cell at (row, col), both 1-based.
func (t *Table) Val(row, col int) (Value, bool) {
	if row < 1 || row > t.rows || col < 1 || col > len(t.cols) {
		return Value{}, false
	}
	return t.data[col-1][row-1], true
}

// ValByName returns the cell in the named column of a data row.
func (t *Table) ValByName(row int, name string) (Value, bool) {
	i, ok := t.lookup(name)
	if !ok {
		return Value{}, false
	}
	return t.Val(row, i+1)
}

// RestOfRow returns the cells of row n except those in the excluded
// columns, keeping column order.
func (t *Table) RestOfRow(n int, excluded []string) ([]Value, error) {
	vals, err := t.RowValues(n)
	if err != nil {
		return nil, err
	}
	skip := make(map[int]bool, len(excluded))
	for _, name := range excluded {
		if i, ok := t.lookup(name); ok {
			skip[i] = true
		}
	}
	out := make([]Value, 0, len(vals)-len(skip))
	for i, v := range vals {
		if !skip[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// String renders the header and every row as comma-separated lines.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Header(), ","))
	b.WriteByte('\n')
	for r := 0; r < t.rows; r++ {
		for c := range t.cols {
			if c > 0 {
				b.WriteByte(',')
			}
			b.WriteString(t.data[c][r].Raw)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
