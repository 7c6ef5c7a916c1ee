package sql

import (
	"fmt"

	"github.com/moojink/RDBMS/pkg/catalog"
)

// Executor runs statements against a Catalog.
type Executor struct {
	cat *catalog.Catalog
}

// NewExecutor creates a new Executor.
func NewExecutor(cat *catalog.Catalog) *Executor {
	return &Executor{cat: cat}
}

// Result is the outcome of one statement. Table is set for print and
// select; everything else succeeds silently.
type Result struct {
	Table        *catalog.Table
	RowsAffected int
}

// String renders the result the way it is shown to the user.
func (r *Result) String() string {
	if r == nil || r.Table == nil {
		return ""
	}
	return r.Table.String()
}

// Execute executes a statement and returns a result.
func (e *Executor) Execute(stmt Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *CreateTableStmt:
		return e.executeCreate(s)
	case *CreateTableAsStmt:
		return e.executeCreateAs(s)
	case *LoadStmt:
		t, err := e.cat.Load(s.TableName)
		if err != nil {
			return nil, err
		}
		return &Result{RowsAffected: t.NumRows()}, nil
	case *StoreStmt:
		if err := e.cat.Store(s.TableName); err != nil {
			return nil, err
		}
		return &Result{}, nil
	case *DropTableStmt:
		if err := e.cat.Drop(s.TableName); err != nil {
			return nil, err
		}
		return &Result{}, nil
	case *InsertStmt:
		return e.executeInsert(s)
	case *PrintStmt:
		t, err := e.cat.Get(s.TableName)
		if err != nil {
			return nil, err
		}
		return &Result{Table: t}, nil
	case *SelectStmt:
		t, err := e.Select(s)
		if err != nil {
			return nil, err
		}
		return &Result{Table: t, RowsAffected: t.NumRows()}, nil
	default:
		return nil, fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

func (e *Executor) executeCreate(s *CreateTableStmt) (*Result, error) {
	t, err := catalog.NewTable(s.TableName, s.Columns)
	if err != nil {
		return nil, err
	}
	e.cat.Put(s.TableName, t)
	return &Result{}, nil
}

// executeCreateAs materializes the select result into a fresh table. The
// rendered rows are re-read against the result's column types so the new
// table never shares storage with its sources.
func (e *Executor) executeCreateAs(s *CreateTableAsStmt) (*Result, error) {
	res, err := e.Select(s.Select)
	if err != nil {
		return nil, err
	}
	header, err := res.Row(0)
	if err != nil {
		return nil, err
	}
	t, err := catalog.NewTableFromHeader(s.TableName, header)
	if err != nil {
		return nil, err
	}
	for r := 1; r <= res.NumRows(); r++ {
		cells, err := res.Row(r)
		if err != nil {
			return nil, err
		}
		if err := t.AddRowLiterals(cells); err != nil {
			return nil, err
		}
	}
	e.cat.Put(s.TableName, t)
	return &Result{RowsAffected: t.NumRows()}, nil
}

func (e *Executor) executeInsert(s *InsertStmt) (*Result, error) {
	t, err := e.cat.Get(s.TableName)
	if err != nil {
		return nil, err
	}
	if err := t.AddRowLiterals(s.Values); err != nil {
		return nil, err
	}
	return &Result{RowsAffected: 1}, nil
}

// Select joins the named tables left to right, projects the select list
// and filters by the where conjuncts.
func (e *Executor) Select(s *SelectStmt) (*catalog.Table, error) {
	tables := make([]*catalog.Table, 0, len(s.Tables))
	for _, name := range s.Tables {
		t, err := e.cat.Get(name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	joined, err := catalog.JoinAll(tables...)
	if err != nil {
		return nil, err
	}
	projected, err := EvalExprs(joined, s.Exprs)
	if err != nil {
		return nil, err
	}
	return EvalConds(projected, s.Conds)
}
