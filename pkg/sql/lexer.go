package sql

import "strings"

// scanner walks a string byte by byte and tracks whether the current
// position is inside a single-quoted literal.
type scanner struct {
	input   string
	pos     int
	inQuote bool
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

// next advances past the current byte and returns it, updating quote state.
func (s *scanner) next() (byte, bool) {
	if s.pos >= len(s.input) {
		return 0, false
	}
	ch := s.input[s.pos]
	if ch == '\'' {
		s.inQuote = !s.inQuote
	}
	s.pos++
	return ch, true
}

// hasPrefixOutside reports whether sep starts at the current position and
// the position is not inside a literal.
func (s *scanner) hasPrefixOutside(sep string) bool {
	return !s.inQuote && strings.HasPrefix(s.input[s.pos:], sep)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// NormalizeQuery collapses whitespace outside literals to single spaces,
// trims the ends and removes spaces next to commas.
func NormalizeQuery(q string) string {
	var b strings.Builder
	s := newScanner(q)
	pendingSpace := false
	for {
		wasQuoted := s.inQuote
		ch, ok := s.next()
		if !ok {
			break
		}
		if !wasQuoted && isSpace(ch) {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			if b.Len() > 0 && ch != ',' && !strings.HasSuffix(b.String(), ",") {
				b.WriteByte(' ')
			}
			pendingSpace = false
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// Tokenize splits s on spaces that are not inside single-quoted literals.
// Empty tokens are dropped.
func Tokenize(s string) []string {
	var (
		tokens []string
		b      strings.Builder
	)
	sc := newScanner(s)
	for {
		wasQuoted := sc.inQuote
		ch, ok := sc.next()
		if !ok {
			break
		}
		if !wasQuoted && isSpace(ch) {
			if b.Len() > 0 {
				tokens = append(tokens, b.String())
				b.Reset()
			}
			continue
		}
		b.WriteByte(ch)
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

// SplitOutside splits s around every occurrence of sep that is not inside
// a single-quoted literal.
func SplitOutside(s, sep string) []string {
	var parts []string
	sc := newScanner(s)
	start := 0
	for sc.pos < len(s) {
		if sc.hasPrefixOutside(sep) {
			parts = append(parts, s[start:sc.pos])
			sc.pos += len(sep)
			start = sc.pos
			continue
		}
		sc.next()
	}
	return append(parts, s[start:])
}

// cutOutside slices s around the first occurrence of sep outside literals.
func cutOutside(s, sep string) (before, after string, found bool) {
	sc := newScanner(s)
	for sc.pos < len(s) {
		if sc.hasPrefixOutside(sep) {
			return s[:sc.pos], s[sc.pos+len(sep):], true
		}
		sc.next()
	}
	return s, "", false
}

// normalizeExpr puts single spaces around the first arithmetic operator of
// a select item, so "x+y as z" reads as "x + y as z". A minus sign with no
// operand before it is a sign, not an operator.
func normalizeExpr(item string) string {
	sc := newScanner(item)
	seenOperand := false
	for {
		at := sc.pos
		wasQuoted := sc.inQuote
		ch, ok := sc.next()
		if !ok {
			return item
		}
		if wasQuoted {
			continue
		}
		switch {
		case isArithOp(ch) && seenOperand:
			left := strings.TrimSpace(item[:at])
			right := strings.TrimSpace(item[at+1:])
			return left + " " + string(ch) + " " + right
		case !isSpace(ch):
			seenOperand = true
		}
	}
}

func isArithOp(ch byte) bool {
	return ch == '+' || ch == '-' || ch == '*' || ch == '/'
}
