package sql

import "github.com/moojink/RDBMS/pkg/catalog"

// AST node types for the command language

// Statement is the interface for all commands.
type Statement interface {
	statementNode()
	// Kind names the command for logging.
	Kind() string
}

// CreateTableStmt represents `create table T (c1 t1, ...)`.
type CreateTableStmt struct {
	TableName string
	Columns   []catalog.Column
}

func (s *CreateTableStmt) statementNode() {}
func (s *CreateTableStmt) Kind() string { return "create" }

// CreateTableAsStmt represents `create table T as select ...`.
type CreateTableAsStmt struct {
	TableName string
	Select    *SelectStmt
}

func (s *CreateTableAsStmt) statementNode() {}
func (s *CreateTableAsStmt) Kind() string { return "create_as_select" }

// LoadStmt represents `load T`.
type LoadStmt struct {
	TableName string
}

func (s *LoadStmt) statementNode() {}
func (s *LoadStmt) Kind() string { return "load" }

// StoreStmt represents `store T`.
type StoreStmt struct {
	TableName string
}

func (s *StoreStmt) statementNode() {}
func (s *StoreStmt) Kind() string { return "store" }

// DropTableStmt represents `drop table T`.
type DropTableStmt struct {
	TableName string
}

func (s *DropTableStmt) statementNode() {}
func (s *DropTableStmt) Kind() string { return "drop" }

// InsertStmt represents `insert into T values v1,v2,...`. Values are kept
// as literal text and typed against the table's columns on execution.
type InsertStmt struct {
	TableName string
	Values    []string
}

func (s *InsertStmt) statementNode() {}
func (s *InsertStmt) Kind() string { return "insert" }

// PrintStmt represents `print T`.
type PrintStmt struct {
	TableName string
}

func (s *PrintStmt) statementNode() {}
func (s *PrintStmt) Kind() string { return "print" }

// SelectStmt represents `select e1,... from T1,... [where c1 and ...]`.
// Expressions and conditions stay as text; the evaluators tokenize them
// against the joined table.
type SelectStmt struct {
	Exprs  []string
	Tables []string
	Conds  []string
}

func (s *SelectStmt) statementNode() {}
func (s *SelectStmt) Kind() string { return "select" }
