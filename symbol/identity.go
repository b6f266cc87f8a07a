package symbol

import "github.com/HyperCogWizard/mork-go/expr"

// Identity is the non-interning fallback interner described in spec §4.2:
// it truncates symbols to 63 bytes and embeds the (truncated) bytes
// directly as the symbol payload, with no lookup table and no reversible
// handle. Two distinct symbols that share a 63-byte prefix collide under
// Identity; this is documented as lossy, not a correctness guarantee, and
// exists for builds that don't want an interning table at all.
type Identity struct{}

// InternBytes truncates buf to at most expr.MaxSymbolSize bytes and
// returns it as the literal payload to embed via expr.Zipper.WriteSymbol.
func (Identity) InternBytes(buf []byte) []byte {
	if len(buf) > expr.MaxSymbolSize {
		return buf[:expr.MaxSymbolSize]
	}
	return buf
}

// Resolve returns payload unchanged: under Identity the payload bytes are
// already the (possibly truncated) original symbol text.
func (Identity) Resolve(payload []byte) ([]byte, bool) {
	return payload, true
}
