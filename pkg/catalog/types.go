// Package catalog provides the type system, the columnar Table and the table registry.
package catalog

import (
	"fmt"
	"strings"
)

// DataType represents a column data type.
type DataType int

const (
	TypeUnknown DataType = iota
	TypeString
	TypeInt
	TypeFloat
)

// String returns the name of the type as it appears in a column header.
func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of the type take part in arithmetic.
func (t DataType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// ParseDataType converts a type name to DataType. Only the lowercase
// spellings are recognised.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	default:
		return TypeUnknown, fmt.Errorf("%w: unknown type %q", ErrInvalidSchema, s)
	}
}

// Sentinel literals.
const (
	NoValueLiteral = "NOVALUE"
	NaNLiteral     = "NaN"
)

// Kind distinguishes ordinary literals from the two sentinels.
type Kind int

const (
	KindLiteral Kind = iota
	KindNoValue
	KindNaN
)

// Value is a single typed cell. Raw holds the literal text exactly as it
// is rendered, including the quotes of a string.
type Value struct {
	Type DataType
	Raw  string
	Kind Kind
}

// NoValue returns the absence sentinel for a column of type t.
func NoValue(t DataType) Value {
	return Value{Type: t, Raw: NoValueLiteral, Kind: KindNoValue}
}

// NaN returns the not-a-number sentinel for a column of type t.
func NaN(t DataType) Value {
	return Value{Type: t, Raw: NaNLiteral, Kind: KindNaN}
}

// IsNoValue reports whether v is the NOVALUE sentinel.
func (v Value) IsNoValue() bool { return v.Kind == KindNoValue }

// IsNaN reports whether v is the NaN sentinel.
func (v Value) IsNaN() bool { return v.Kind == KindNaN }

// String returns the rendered form of the value.
func (v Value) String() string { return v.Raw }

// Unquoted returns the contents of a string literal without its quotes.
// Other values are returned as is.
func (v Value) Unquoted() string {
	if v.Type == TypeString && v.Kind == KindLiteral && len(v.Raw) >= 2 {
		return v.Raw[1 : len(v.Raw)-1]
	}
	return v.Raw
}

// Classify determines which type a literal belongs to. The sentinels are
// not classified; callers handle them against a known column type.
func Classify(lit string) (DataType, error) {
	switch {
	case isStringLiteral(lit):
		return TypeString, nil
	case isIntLiteral(lit):
		return TypeInt, nil
	case isFloatLiteral(lit):
		return TypeFloat, nil
	default:
		return TypeUnknown, fmt.Errorf("%w: %s", ErrInvalidLiteral, lit)
	}
}

// ValidLiteral reports whether lit is an acceptable cell for a column of
// type t. NOVALUE is accepted everywhere, NaN in numeric columns.
func ValidLiteral(lit string, t DataType) bool {
	if lit == NoValueLiteral {
		return true
	}
	switch t {
	case TypeString:
		return isStringLiteral(lit)
	case TypeInt:
		return lit == NaNLiteral || isIntLiteral(lit)
	case TypeFloat:
		return lit == NaNLiteral || isFloatLiteral(lit)
	default:
		return false
	}
}

// ParseValue builds a Value of type t from its literal text.
func ParseValue(lit string, t DataType) (Value, error) {
	if !ValidLiteral(lit, t) {
		return Value{}, fmt.Errorf("%w: %s is not a valid %s", ErrTypeMismatch, lit, t)
	}
	switch lit {
	case NoValueLiteral:
		return NoValue(t), nil
	case NaNLiteral:
		return NaN(t), nil
	}
	return Value{Type: t, Raw: lit, Kind: KindLiteral}, nil
}

// LiteralValue classifies lit and wraps it as a Value. The sentinels are
// rejected since they carry no type of their own.
func LiteralValue(lit string) (Value, error) {
	t, err := Classify(lit)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: t, Raw: lit, Kind: KindLiteral}, nil
}

func isStringLiteral(s string) bool {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return false
	}
	return !strings.ContainsAny(s[1:len(s)-1], "\n\t,'\"")
}

func isIntLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isFloatLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	dots, digits := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			dots++
		case c >= '0' && c <= '9':
			digits++
		default:
			return false
		}
	}
	return dots == 1 && digits > 0
}

// ValidIdentifier reports whether s can name a table or column: a letter
// followed by letters, digits or underscores.
func ValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '_' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

// Column describes a single table column.
type Column struct {
	Name string
	Type DataType
}

// Key returns the header form of the column, "name type".
func (c Column) Key() string {
	return c.Name + " " + c.Type.String()
}

// ParseColumn parses a "name type" header token.
func ParseColumn(key string) (Column, error) {
	parts := strings.Fields(key)
	if len(parts) != 2 {
		return Column{}, fmt.Errorf("%w: malformed column %q", ErrInvalidSchema, key)
	}
	if !ValidIdentifier(parts[0]) {
		return Column{}, fmt.Errorf("%w: invalid column name %q", ErrInvalidSchema, parts[0])
	}
	t, err := ParseDataType(parts[1])
	if err != nil {
		return Column{}, err
	}
	return Column{Name: parts[0], Type: t}, nil
}
