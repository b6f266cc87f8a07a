package expr

import (
	"fmt"
	"io"
)

// Resolver maps a symbol payload back to its original bytes. The default
// interner (package symbol) implements this; nil means "print the raw
// payload bytes", matching the non-interning fallback.
type Resolver func(payload []byte) (string, bool)

// Serialize writes e to w as text S-expression syntax (spec §6.2): bare
// tokens for symbols, "$vN" for the N-th NewVar in introduction order,
// "_i" (1-based) for VarRef, and parenthesized compounds, including the
// empty compound "()". NewVars are named rather than emitted as a bare
// "$" so that a round trip through Parse reintroduces the same distinct
// positional variables instead of colliding on one anonymous name (spec
// §6.1 requires Dump/Load to round-trip).
func Serialize(e Expression, resolve Resolver, w io.Writer) error {
	vars := 0
	_, err := serializeAt(e.Buf, 0, resolve, w, &vars)
	return err
}

func serializeAt(buf []byte, pos int, resolve Resolver, w io.Writer, vars *int) (int, error) {
	if pos >= len(buf) {
		return pos, ErrTruncated
	}
	tag := Decode(buf[pos])
	switch tag.Kind {
	case KindReserved:
		return pos, ErrReserved
	case KindNewVar:
		_, err := fmt.Fprintf(w, "$v%d", *vars)
		*vars++
		return pos + 1, err
	case KindVarRef:
		_, err := fmt.Fprintf(w, "_%d", tag.Payload+1)
		return pos + 1, err
	case KindSymbol:
		need := tag.TokenLen()
		if pos+need > len(buf) {
			return pos, ErrTruncated
		}
		payload := buf[pos+1 : pos+need]
		text := symbolText(payload, resolve)
		if _, err := io.WriteString(w, text); err != nil {
			return pos, err
		}
		return pos + need, nil
	case KindArity:
		if _, err := io.WriteString(w, "("); err != nil {
			return pos, err
		}
		next := pos + 1
		for i := 0; i < tag.Payload; i++ {
			if i > 0 {
				if _, err := io.WriteString(w, " "); err != nil {
					return pos, err
				}
			}
			var err error
			next, err = serializeAt(buf, next, resolve, w, vars)
			if err != nil {
				return pos, err
			}
		}
		_, err := io.WriteString(w, ")")
		return next, err
	}
	return pos, ErrReserved
}

func symbolText(payload []byte, resolve Resolver) string {
	if resolve != nil {
		if s, ok := resolve(payload); ok {
			return s
		}
	}
	return string(payload)
}
