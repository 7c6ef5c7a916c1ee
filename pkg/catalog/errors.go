package catalog

import "errors"

var (
	// ErrNoSuchTable is returned when a table name is not registered.
	ErrNoSuchTable = errors.New("no such table")

	// ErrNoSuchColumn is returned when a column does not exist in a table.
	ErrNoSuchColumn = errors.New("no such column")

	// ErrInvalidLiteral is returned when a literal matches none of the types.
	ErrInvalidLiteral = errors.New("invalid literal")

	// ErrTypeMismatch is returned when a value does not fit its column type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrRowArity is returned when a row has the wrong number of values.
	ErrRowArity = errors.New("row does not match table format")

	// ErrInvalidSchema is returned for bad column names, unknown types
	// and duplicate columns.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrRowOutOfRange is returned when a row index is outside the table.
	ErrRowOutOfRange = errors.New("row index out of range")
)
