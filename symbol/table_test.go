package symbol

import (
	"bytes"
	"testing"
)

func TestInternIdempotent(t *testing.T) {
	tbl := NewTable()
	h1 := tbl.Intern([]byte("Trevor"))
	h2 := tbl.Intern([]byte("Trevor"))
	if h1 != h2 {
		t.Fatalf("Intern not idempotent: %v != %v", h1, h2)
	}
}

func TestInternStableAcrossOtherInserts(t *testing.T) {
	tbl := NewTable()
	h1 := tbl.Intern([]byte("first_name"))
	tbl.Intern([]byte("last_name"))
	tbl.Intern([]byte("age"))
	h1again := tbl.Intern([]byte("first_name"))
	if h1 != h1again {
		t.Fatalf("handle changed after other inserts: %v != %v", h1, h1again)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	tbl := NewTable()
	h := tbl.Intern([]byte("children"))
	got, ok := tbl.Resolve(h.Bytes())
	if !ok {
		t.Fatal("resolve failed")
	}
	if !bytes.Equal(got, []byte("children")) {
		t.Fatalf("got %q", got)
	}
}

func TestResolveUnknownHandle(t *testing.T) {
	tbl := NewTable()
	var bogus Handle
	bogus[0] = 0xFF
	_, ok := tbl.Resolve(bogus.Bytes())
	if ok {
		t.Fatal("expected resolve of unknown handle to fail")
	}
}

func TestDistinctSymbolsGetDistinctHandles(t *testing.T) {
	tbl := NewTable()
	h1 := tbl.Intern([]byte("home"))
	h2 := tbl.Intern([]byte("office"))
	if h1 == h2 {
		t.Fatal("distinct symbols got the same handle")
	}
}

func TestIdentityTruncates(t *testing.T) {
	var id Identity
	big := bytes.Repeat([]byte("x"), 100)
	payload := id.InternBytes(big)
	if len(payload) != 63 {
		t.Fatalf("len = %d, want 63", len(payload))
	}
}

func TestReset(t *testing.T) {
	tbl := NewTable()
	tbl.Intern([]byte("a"))
	tbl.Intern([]byte("b"))
	if tbl.Len() != 2 {
		t.Fatalf("len = %d, want 2", tbl.Len())
	}
	tbl.Reset()
	if tbl.Len() != 0 {
		t.Fatalf("len after reset = %d, want 0", tbl.Len())
	}
	// handles are re-issued after reset; interning again should succeed.
	h := tbl.Intern([]byte("a"))
	if _, ok := tbl.Resolve(h.Bytes()); !ok {
		t.Fatal("resolve failed after reset+reintern")
	}
}
