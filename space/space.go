// Package space implements MORK's Space (spec §3.3): the single ordered
// set of encoded expressions, guarded by an access authority, together
// with the transform driver (component G) that ties the expression
// encoder, trie, pattern compiler, transition engine, and substitution
// engine together into query/transform/metta-calculus operations.
package space

import (
	"github.com/HyperCogWizard/mork-go/authority"
	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/symbol"
	"github.com/HyperCogWizard/mork-go/trie"
)

// Space owns one shared trie of encoded expressions plus the authority
// guarding its cursors (spec §3.5: "The Space owns the trie").
type Space struct {
	trie     *trie.Trie
	auth     *authority.Authority
	interner symbol.Interner
}

// New returns an empty Space using interner to encode symbol payloads.
// Pass symbol.NewTable() for the interning build, or symbol.Identity{}
// for the non-interning fallback (spec §4.2).
func New(interner symbol.Interner) *Space {
	return &Space{trie: trie.New(), auth: authority.New(), interner: interner}
}

// Interner returns the Space's symbol interner, so ingest adapters and the
// S-expression parser can encode symbols consistently with stored data.
func (s *Space) Interner() symbol.Interner { return s.interner }

// Len returns the number of distinct expressions stored.
func (s *Space) Len() int { return s.trie.Len() }

// Insert adds e's encoded bytes to the Space, under a full-path exclusive
// write permit (spec §5: "ingest adapters ... write to their own exclusive
// write cursor"). Returns true if the expression was not already present.
func (s *Space) Insert(e expr.Expression) (bool, error) {
	buf, err := e.Bytes()
	if err != nil {
		return false, err
	}
	permit, err := s.auth.AcquireWrite(buf)
	if err != nil {
		return false, err
	}
	defer permit.Close()
	return s.trie.Insert(buf), nil
}

// Contains reports whether e's encoded bytes are present.
func (s *Space) Contains(e expr.Expression) (bool, error) {
	buf, err := e.Bytes()
	if err != nil {
		return false, err
	}
	return s.trie.Contains(buf), nil
}

// Each visits every stored expression's encoded bytes in byte-lexicographic
// order, stopping early if f returns false. The slice passed to f aliases
// the trie's own storage only for the duration of one call.
func (s *Space) Each(f func(buf []byte) bool) {
	s.trie.Each(f)
}
