package expr

import (
	"bytes"
	"testing"
)

func sym(z *Zipper, s string) {
	if err := z.WriteSymbol([]byte(s)); err != nil {
		panic(err)
	}
}

// (foo bar) as a compound of two symbols.
func buildFooBar(t *testing.T) []byte {
	z := NewZipper()
	if err := z.WriteArity(2); err != nil {
		t.Fatal(err)
	}
	sym(z, "foo")
	sym(z, "bar")
	return z.Bytes()
}

func TestSpanRoundTrip(t *testing.T) {
	buf := buildFooBar(t)
	e := New(buf)
	n, err := e.Span()
	if err != nil {
		t.Fatal(err)
	}
	if n != len(buf) {
		t.Fatalf("span = %d, want %d", n, len(buf))
	}
}

func TestSerializeCompound(t *testing.T) {
	buf := buildFooBar(t)
	var out bytes.Buffer
	if err := Serialize(New(buf), nil, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "(foo bar)" {
		t.Fatalf("got %q", got)
	}
}

func TestSerializeEmptyCompound(t *testing.T) {
	z := NewZipper()
	if err := z.WriteArity(0); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := Serialize(New(z.Bytes()), nil, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "()" {
		t.Fatalf("got %q", got)
	}
}

func TestSerializeVars(t *testing.T) {
	// ($x _1) : NewVar then VarRef(0)
	z := NewZipper()
	if err := z.WriteArity(2); err != nil {
		t.Fatal(err)
	}
	z.WriteVar()
	if err := z.WriteVarRef(0); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := Serialize(New(z.Bytes()), nil, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "($v0 _1)" {
		t.Fatalf("got %q", got)
	}
}

func TestPrefixVariableFree(t *testing.T) {
	buf := buildFooBar(t)
	e := New(buf)
	p, err := e.Prefix()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p, buf) {
		t.Fatalf("prefix = %x, want whole buffer %x", p, buf)
	}
}

func TestPrefixStopsAtFirstVar(t *testing.T) {
	// (foo $)
	z := NewZipper()
	if err := z.WriteArity(2); err != nil {
		t.Fatal(err)
	}
	sym(z, "foo")
	z.WriteVar()
	buf := z.Bytes()
	e := New(buf)
	p, err := e.Prefix()
	if err != nil {
		t.Fatal(err)
	}
	// prefix includes the arity byte, "foo" symbol bytes, and the NewVar byte.
	if len(p) != len(buf) {
		t.Fatalf("prefix len = %d, want %d (whole buffer up to and including NewVar)", len(p), len(buf))
	}
}

func TestSubstitute(t *testing.T) {
	// template: (child_results _1)
	tmpl := NewZipper()
	if err := tmpl.WriteArity(2); err != nil {
		t.Fatal(err)
	}
	sym(tmpl, "child_results")
	if err := tmpl.WriteVarRef(0); err != nil {
		t.Fatal(err)
	}

	// reference: symbol "Trevor"
	ref := NewZipper()
	sym(ref, "Trevor")

	out := NewZipper()
	if err := Substitute(New(tmpl.Bytes()), [][]byte{ref.Bytes()}, out); err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	if err := Serialize(New(out.Bytes()), nil, &text); err != nil {
		t.Fatal(err)
	}
	if got := text.String(); got != "(child_results Trevor)" {
		t.Fatalf("got %q", got)
	}
}

func TestSubstituteRejectsNewVarInTemplate(t *testing.T) {
	z := NewZipper()
	z.WriteVar()
	out := NewZipper()
	err := Substitute(New(z.Bytes()), nil, out)
	if err != ErrNewVarInTemplate {
		t.Fatalf("err = %v, want ErrNewVarInTemplate", err)
	}
}

func TestDecodeReservedTag(t *testing.T) {
	tag := Decode(0x40) // 01_000000
	if tag.Kind != KindReserved {
		t.Fatalf("kind = %v, want KindReserved", tag.Kind)
	}
}

func TestEncodeSymbolTooLarge(t *testing.T) {
	z := NewZipper()
	big := make([]byte, 64)
	if err := z.WriteSymbol(big); err != ErrSymbolTooLarge {
		t.Fatalf("err = %v, want ErrSymbolTooLarge", err)
	}
}
