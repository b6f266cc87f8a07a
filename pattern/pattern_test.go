package pattern

import (
	"testing"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/symbol"
	"github.com/HyperCogWizard/mork-go/trie"
)

var ident = symbol.Identity{}

func sym(t *testing.T, z *expr.Zipper, s string) {
	t.Helper()
	payload, _ := ident.Resolve(ident.InternBytes([]byte(s)))
	if err := z.WriteSymbol(payload); err != nil {
		t.Fatalf("WriteSymbol(%q): %v", s, err)
	}
}

// buildCompound encodes (name a b ...) with each element treated as a bare
// symbol, for tests that don't need nesting.
func buildCompound(t *testing.T, elems ...string) []byte {
	t.Helper()
	z := expr.NewZipper()
	if err := z.WriteArity(len(elems)); err != nil {
		t.Fatal(err)
	}
	for _, e := range elems {
		sym(t, z, e)
	}
	return z.Bytes()
}

func insertAll(tr *trie.Trie, paths ...[]byte) {
	for _, p := range paths {
		tr.Insert(p)
	}
}

// compilePatternRemainder splits off the pattern's LiteralPrefix and
// compiles the rest, mirroring what the transform driver does.
func compilePatternRemainder(t *testing.T, patBuf []byte) (prefix []byte, prog Program) {
	t.Helper()
	e := expr.New(patBuf)
	p, err := e.LiteralPrefix()
	if err != nil {
		t.Fatalf("LiteralPrefix: %v", err)
	}
	n, err := Compile(patBuf[len(p):])
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return p, Program{n}
}

func TestLiteralMatchNoVariables(t *testing.T) {
	tr := trie.New()
	insertAll(tr, buildCompound(t, "foo", "bar"), buildCompound(t, "foo", "baz"))

	pat := buildCompound(t, "foo", "bar")
	prefix, prog := compilePatternRemainder(t, pat)

	cur := trie.NewReadCursor(tr, prefix)
	matches := 0
	err := Run(cur, prog, func(refs [][]byte) error {
		matches++
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if matches != 1 {
		t.Fatalf("matches = %d, want 1", matches)
	}
}

func TestVariableCapturesSubexpression(t *testing.T) {
	tr := trie.New()
	insertAll(tr, buildCompound(t, "foo", "bar"), buildCompound(t, "foo", "baz"))

	// pattern: (foo $x)
	z := expr.NewZipper()
	z.WriteArity(2)
	sym(t, z, "foo")
	z.WriteVar()
	pat := z.Bytes()

	prefix, prog := compilePatternRemainder(t, pat)
	cur := trie.NewReadCursor(tr, prefix)

	var captured []string
	err := Run(cur, prog, func(refs [][]byte) error {
		if len(refs) != 1 {
			t.Fatalf("expected 1 ref, got %d", len(refs))
		}
		payload, _ := ident.Resolve(refs[0][1:])
		captured = append(captured, string(payload))
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(captured) != 2 {
		t.Fatalf("captured = %v, want 2 entries", captured)
	}
}

func TestVarRefUnifiesEqualCaptures(t *testing.T) {
	tr := trie.New()
	insertAll(tr,
		buildCompound(t, "eq", "a", "a"),
		buildCompound(t, "eq", "a", "b"),
	)

	// pattern: (eq $x _1)
	z := expr.NewZipper()
	z.WriteArity(3)
	sym(t, z, "eq")
	z.WriteVar()
	z.WriteVarRef(0)
	pat := z.Bytes()

	prefix, prog := compilePatternRemainder(t, pat)
	cur := trie.NewReadCursor(tr, prefix)

	matches := 0
	err := Run(cur, prog, func(refs [][]byte) error {
		matches++
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if matches != 1 {
		t.Fatalf("matches = %d, want 1 (only (eq a a) should unify)", matches)
	}
}

func TestAbortStopsSearch(t *testing.T) {
	tr := trie.New()
	insertAll(tr, buildCompound(t, "foo", "a"), buildCompound(t, "foo", "b"), buildCompound(t, "foo", "c"))

	z := expr.NewZipper()
	z.WriteArity(2)
	sym(t, z, "foo")
	z.WriteVar()
	pat := z.Bytes()

	prefix, prog := compilePatternRemainder(t, pat)
	cur := trie.NewReadCursor(tr, prefix)

	seen := 0
	err := Run(cur, prog, func(refs [][]byte) error {
		seen++
		return ErrAbort
	})
	if err != ErrAbort {
		t.Fatalf("err = %v, want ErrAbort", err)
	}
	if seen != 1 {
		t.Fatalf("seen = %d, want exactly 1 before abort", seen)
	}
}

func TestNoMatchYieldsNoAction(t *testing.T) {
	tr := trie.New()
	insertAll(tr, buildCompound(t, "foo", "bar"))

	pat := buildCompound(t, "foo", "qux")
	prefix, prog := compilePatternRemainder(t, pat)
	cur := trie.NewReadCursor(tr, prefix)

	matches := 0
	err := Run(cur, prog, func(refs [][]byte) error {
		matches++
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if matches != 0 {
		t.Fatalf("matches = %d, want 0", matches)
	}
}
