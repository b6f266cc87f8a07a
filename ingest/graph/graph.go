// Package graph adapts a graph-database row source into MORK's tagged
// 4-tuple convention (spec §6.3): subject/predicate/object triples as
// `(SPO s p o)`, node-key/value pairs as `(NKV n k v)`, and node labels as
// `(NL n label c)`, where c is the Row's C field (the empty symbol when
// unset). No concrete graph-database SDK appears anywhere in the
// example pack, so this package stops at the interface seam a real
// driver would implement (RowSource) plus an in-memory implementation
// for tests — left interface-shaped per SPEC_FULL.md's own instruction
// (see DESIGN.md).
package graph

import (
	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/space"
)

// RowKind selects which of the three tagged tuple shapes a Row encodes.
type RowKind int

const (
	// KindSPO is a subject/predicate/object edge: (SPO s p o).
	KindSPO RowKind = iota
	// KindNKV is a node key/value property: (NKV n k v).
	KindNKV
	// KindNL is a node label assertion: (NL n label c), c usually empty.
	KindNL
)

// Row is one record read from a graph database, already split into its
// 3 textual fields; the meaning of each field depends on Kind.
type Row struct {
	Kind RowKind
	A, B, C string
}

// RowSource is the seam a real graph-database driver implements: Next
// returns one row at a time, io.EOF-shaped via the ok return (false with
// a nil error means "no more rows").
type RowSource interface {
	Next() (row Row, ok bool, err error)
}

// MemorySource is an in-memory RowSource, useful for tests and for small
// graphs assembled programmatically rather than read from a live driver.
type MemorySource struct {
	rows []Row
	pos  int
}

// NewMemorySource returns a RowSource that replays rows in order.
func NewMemorySource(rows []Row) *MemorySource {
	return &MemorySource{rows: rows}
}

func (m *MemorySource) Next() (Row, bool, error) {
	if m.pos >= len(m.rows) {
		return Row{}, false, nil
	}
	r := m.rows[m.pos]
	m.pos++
	return r, true, nil
}

func tagName(k RowKind) string {
	switch k {
	case KindSPO:
		return "SPO"
	case KindNKV:
		return "NKV"
	case KindNL:
		return "NL"
	default:
		return "SPO"
	}
}

func insertRow(s *space.Space, r Row) error {
	z := expr.NewZipper()
	if err := z.WriteArity(4); err != nil {
		return err
	}
	interner := s.Interner()
	for _, text := range []string{tagName(r.Kind), r.A, r.B, r.C} {
		if err := z.WriteSymbol(interner.InternBytes([]byte(text))); err != nil {
			return err
		}
	}
	_, err := s.Insert(expr.New(z.Bytes()))
	return err
}

// Convert drains src and inserts one tagged 4-tuple per row into s.
// Returns the number of rows inserted.
func Convert(src RowSource, s *space.Space) (int, error) {
	n := 0
	for {
		row, ok, err := src.Next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		if err := insertRow(s, row); err != nil {
			return n, err
		}
		n++
	}
}
