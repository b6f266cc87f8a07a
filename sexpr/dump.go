package sexpr

import (
	"bufio"
	"io"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/space"
)

// Dump writes every expression stored in s as one text S-expression per
// line, in the Space's own byte-lexicographic order — the dump_sexpr side
// of original_source/kernel/src/lib.rs's dump_sexpr/load_sexpr pairing,
// applied to a whole Space rather than a single match (spec §6.2).
func Dump(s *space.Space, w io.Writer) error {
	bw := bufio.NewWriter(w)
	var outerErr error
	s.Each(func(buf []byte) bool {
		text, err := Format(expr.New(buf), s.Interner())
		if err != nil {
			outerErr = err
			return false
		}
		if _, err := bw.WriteString(text); err != nil {
			outerErr = err
			return false
		}
		if err := bw.WriteByte('\n'); err != nil {
			outerErr = err
			return false
		}
		return true
	})
	if outerErr != nil {
		return outerErr
	}
	return bw.Flush()
}

// Load parses every S-expression found in r and inserts each into s,
// interning symbol text through s.Interner(). Returns the number of
// expressions newly added (an expression already present is read but not
// double-counted, matching Space.Insert's own return convention).
func Load(s *space.Space, r io.Reader) (int, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	exprs, err := ParseAll(buf, InternOf(s.Interner()))
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, e := range exprs {
		ok, err := s.Insert(e)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}
