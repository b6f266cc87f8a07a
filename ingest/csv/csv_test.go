package csv

import (
	"strings"
	"testing"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/space"
	"github.com/HyperCogWizard/mork-go/symbol"
)

func buildTuple(t *testing.T, s *space.Space, elems ...string) expr.Expression {
	t.Helper()
	z := expr.NewZipper()
	if err := z.WriteArity(len(elems)); err != nil {
		t.Fatal(err)
	}
	for _, e := range elems {
		if err := z.WriteSymbol(s.Interner().InternBytes([]byte(e))); err != nil {
			t.Fatal(err)
		}
	}
	return expr.New(z.Bytes())
}

func TestConvertInsertsArityKCompoundsPerRow(t *testing.T) {
	s := space.New(symbol.NewTable())
	n, err := Convert(strings.NewReader("0,123,foo\n1,321,bar\n"), s)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	for _, row := range [][]string{{"0", "123", "foo"}, {"1", "321", "bar"}} {
		ok, err := s.Contains(buildTuple(t, s, row...))
		if err != nil {
			t.Fatalf("Contains: %v", err)
		}
		if !ok {
			t.Fatalf("expected row %v to be present", row)
		}
	}
}

func TestConvertSkipRecordsSkipsHeader(t *testing.T) {
	s := space.New(symbol.NewTable())
	c := Chopper{SkipRecords: 1}
	n, err := c.Convert(strings.NewReader("id,val\n1,foo\n2,bar\n"), s)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	ok, err := s.Contains(buildTuple(t, s, "id", "val"))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Fatal("header row should have been skipped")
	}
}

func TestConvertCustomDelimiter(t *testing.T) {
	s := space.New(symbol.NewTable())
	c := Chopper{Delimiter: '\t'}
	n, err := c.Convert(strings.NewReader("0\t123\tfoo\n"), s)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 1 {
		t.Fatalf("n = %d, want 1", n)
	}
	ok, err := s.Contains(buildTuple(t, s, "0", "123", "foo"))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatal("expected tab-delimited row to be present")
	}
}
