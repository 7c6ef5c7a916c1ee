package sql

import (
	"fmt"
	"strings"

	"github.com/moojink/RDBMS/pkg/catalog"
)

// Parser turns one command string into a Statement.
type Parser struct {
	input string
}

// NewParser creates a parser for input. Whitespace is normalized and a
// single trailing semicolon is dropped.
func NewParser(input string) *Parser {
	q := NormalizeQuery(input)
	q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
	return &Parser{input: q}
}

// Parse is shorthand for NewParser(input).Parse().
func Parse(input string) (Statement, error) {
	return NewParser(input).Parse()
}

// Parse recognizes the command keyword and parses the rest of the command.
func (p *Parser) Parse() (Statement, error) {
	q := p.input
	switch {
	case strings.HasPrefix(q, "create table "):
		return p.parseCreate(strings.TrimPrefix(q, "create table "))
	case strings.HasPrefix(q, "load "):
		name, err := p.parseName(strings.TrimPrefix(q, "load "))
		if err != nil {
			return nil, err
		}
		return &LoadStmt{TableName: name}, nil
	case strings.HasPrefix(q, "store "):
		name, err := p.parseName(strings.TrimPrefix(q, "store "))
		if err != nil {
			return nil, err
		}
		return &StoreStmt{TableName: name}, nil
	case strings.HasPrefix(q, "drop table "):
		name, err := p.parseName(strings.TrimPrefix(q, "drop table "))
		if err != nil {
			return nil, err
		}
		return &DropTableStmt{TableName: name}, nil
	case strings.HasPrefix(q, "insert into "):
		return p.parseInsert(strings.TrimPrefix(q, "insert into "))
	case strings.HasPrefix(q, "print "):
		name, err := p.parseName(strings.TrimPrefix(q, "print "))
		if err != nil {
			return nil, err
		}
		return &PrintStmt{TableName: name}, nil
	case strings.HasPrefix(q, "select "):
		return p.parseSelect(strings.TrimPrefix(q, "select "))
	default:
		return nil, ErrMalformedQuery
	}
}

func (p *Parser) parseName(s string) (string, error) {
	if !catalog.ValidIdentifier(s) {
		return "", fmt.Errorf("%w: bad table name %q", ErrMalformedQuery, s)
	}
	return s, nil
}

// parseCreate handles `T (c1 t1,...)` and `T as select ...`.
func (p *Parser) parseCreate(rest string) (Statement, error) {
	if name, body, ok := strings.Cut(rest, " as select "); ok {
		name, err := p.parseName(name)
		if err != nil {
			return nil, err
		}
		sel, err := p.parseSelect(body)
		if err != nil {
			return nil, err
		}
		return &CreateTableAsStmt{TableName: name, Select: sel}, nil
	}

	open := strings.IndexByte(rest, '(')
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return nil, fmt.Errorf("%w: expected column list", ErrMalformedQuery)
	}
	name, err := p.parseName(strings.TrimSpace(rest[:open]))
	if err != nil {
		return nil, err
	}
	inner := strings.TrimSpace(rest[open+1 : len(rest)-1])
	if inner == "" {
		return nil, fmt.Errorf("%w: empty column list", ErrMalformedQuery)
	}
	var cols []catalog.Column
	for _, def := range strings.Split(inner, ",") {
		fields := strings.Fields(def)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: bad column definition %q", ErrMalformedQuery, def)
		}
		col, err := catalog.ParseColumn(fields[0] + " " + fields[1])
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

// parseInsert handles `T values v1,v2,...`.
func (p *Parser) parseInsert(rest string) (Statement, error) {
	name, list, ok := strings.Cut(rest, " values ")
	if !ok {
		return nil, fmt.Errorf("%w: expected values", ErrMalformedQuery)
	}
	name, err := p.parseName(name)
	if err != nil {
		return nil, err
	}
	values := SplitOutside(list, ",")
	for _, v := range values {
		if v == "" {
			return nil, fmt.Errorf("%w: empty value", ErrMalformedQuery)
		}
	}
	return &InsertStmt{TableName: name, Values: values}, nil
}

// parseSelect handles `exprs from tables [where conds]`. The clause
// keywords are only recognized outside string literals.
func (p *Parser) parseSelect(rest string) (*SelectStmt, error) {
	exprPart, fromPart, ok := cutOutside(rest, " from ")
	if !ok {
		return nil, fmt.Errorf("%w: expected from", ErrMalformedQuery)
	}
	tablePart, wherePart, hasWhere := cutOutside(fromPart, " where ")

	stmt := &SelectStmt{Exprs: SplitOutside(exprPart, ",")}
	for _, e := range stmt.Exprs {
		if strings.TrimSpace(e) == "" {
			return nil, fmt.Errorf("%w: empty select item", ErrMalformedQuery)
		}
	}
	for _, t := range strings.Split(tablePart, ",") {
		name, err := p.parseName(t)
		if err != nil {
			return nil, err
		}
		stmt.Tables = append(stmt.Tables, name)
	}
	if hasWhere {
		stmt.Conds = SplitOutside(wherePart, " and ")
		for _, c := range stmt.Conds {
			if strings.TrimSpace(c) == "" {
				return nil, fmt.Errorf("%w: empty condition", ErrMalformedQuery)
			}
		}
	}
	return stmt, nil
}
