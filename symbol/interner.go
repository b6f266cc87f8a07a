// Package symbol implements MORK's symbol interner (spec §4.2): a mapping
// from arbitrary byte strings to a symbol payload that can be embedded
// directly as an expr.SymbolSize payload, idempotently (equal inputs yield
// equal payloads) and stably (a payload, once issued, never changes).
package symbol

// Handle is the fixed-width (8-byte) interner handle used by Table. A
// Handle's 8 bytes are exactly what gets written as a SymbolSize(8)
// payload in an encoded expression (see package expr); the resolver maps
// it back to the original bytes for serialization.
type Handle [8]byte

// Bytes returns h's 8 bytes, suitable for expr.Zipper.WriteSymbol.
func (h Handle) Bytes() []byte { return h[:] }

// Interner maps byte strings to the symbol payload that should be embedded
// in an encoded expression. Table returns an 8-byte interner handle; the
// non-interning Identity fallback returns the (possibly truncated) input
// bytes themselves.
type Interner interface {
	// InternBytes returns buf's payload bytes, allocating a new binding on
	// first sight.
	InternBytes(buf []byte) []byte
	// Resolve maps a payload (as found in an encoded expression) back to
	// the original bytes. ok is false for an unknown payload.
	Resolve(payload []byte) ([]byte, bool)
}
