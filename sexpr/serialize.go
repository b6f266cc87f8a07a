package sexpr

import (
	"bytes"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/symbol"
)

// ResolverOf adapts a symbol.Interner's Resolve method to expr.Resolver,
// falling back to raw payload bytes for non-resolving interners (e.g.
// symbol.Identity, whose Resolve always reports ok=true anyway).
func ResolverOf(in symbol.Interner) expr.Resolver {
	return func(payload []byte) (string, bool) {
		raw, ok := in.Resolve(payload)
		if !ok {
			return "", false
		}
		return string(raw), true
	}
}

// Format renders e as text S-expression syntax, resolving symbol payloads
// through in.
func Format(e expr.Expression, in symbol.Interner) (string, error) {
	var buf bytes.Buffer
	if err := expr.Serialize(e, ResolverOf(in), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
