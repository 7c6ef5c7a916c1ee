package sql

import "errors"

var (
	// ErrMalformedQuery is returned when a command matches none of the
	// command shapes.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrMalformedExpr is returned for a select item that is neither a
	// column nor `a op b as name`.
	ErrMalformedExpr = errors.New("malformed expression")

	// ErrMalformedCond is returned for a where conjunct that is not
	// `a op b`.
	ErrMalformedCond = errors.New("malformed condition")

	// ErrInvalidOperation is returned when an operator is applied to
	// operands of incompatible types.
	ErrInvalidOperation = errors.New("invalid operation")
)
