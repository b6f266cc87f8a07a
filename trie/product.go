package trie

// Positioner is the cursor surface the pattern transition engine drives: it
// is implemented by both *Cursor and *ProductZipper, so the engine can walk
// a single trie or a product of tries identically (spec §4.3's
// ProductZipper, §4.5's engine taking "a mutable cursor (possibly a
// ProductZipper)").
type Positioner interface {
	DescendToByte(b byte) bool
	DescendTo(bytes []byte) bool
	Ascend(n int) bool
	AscendByte() bool
	DescendFirstByte() (byte, bool)
	ToNextSiblingByte() (byte, bool)
	ToNextVal() bool
	Reset()
	ChildMask() Mask256
	HasValue() bool
	OriginPath() []byte
	Path() []byte
	SetValue()
	Graft(rel []byte)
	GraftTrie(sub *Trie)
}

// ProductZipper glues one primary cursor and N secondary cursors so that,
// once the primary descends past a position carrying a value, the cursor
// logically continues into the subtree of secondary 0, then (once that is
// exhausted past a value) secondary 1, and so on (spec §4.3 "Product
// cursor"). Movement order: the primary is exhausted first at each
// crossing, then secondary 0, etc.
type ProductZipper struct {
	cursors []*Cursor // cursors[0] = primary, cursors[1:] = secondaries
	level   int
}

// NewProductZipper builds a ProductZipper from a primary cursor and zero or
// more secondary cursors, each already positioned at its own pattern
// prefix (spec §4.7 step 3).
func NewProductZipper(primary *Cursor, secondaries ...*Cursor) *ProductZipper {
	cursors := make([]*Cursor, 0, 1+len(secondaries))
	cursors = append(cursors, primary)
	cursors = append(cursors, secondaries...)
	return &ProductZipper{cursors: cursors}
}

func (z *ProductZipper) active() *Cursor { return z.cursors[z.level] }

// atLastLevel reports whether the zipper is currently walking the final
// (deepest) cursor in the product, i.e. a HasValue here is a full match of
// the concatenation p·q1·...·qn, not just a crossing point.
func (z *ProductZipper) atLastLevel() bool { return z.level == len(z.cursors)-1 }

// DescendToByte implements the crossing rule: if the active cursor cannot
// move to b directly but sits at a value, try to cross into the next
// level's root and move there instead.
func (z *ProductZipper) DescendToByte(b byte) bool {
	cur := z.active()
	if cur.DescendToByte(b) {
		return true
	}
	if !z.atLastLevel() && cur.HasValue() {
		next := z.cursors[z.level+1]
		next.Reset()
		if next.DescendToByte(b) {
			z.level++
			return true
		}
	}
	return false
}

// DescendTo descends through bytes one at a time, crossing levels as
// needed, stopping (with frames already moved left in place) at the first
// byte that can't be matched at any reachable level.
func (z *ProductZipper) DescendTo(bytes []byte) bool {
	for _, b := range bytes {
		if !z.DescendToByte(b) {
			return false
		}
	}
	return true
}

// Ascend moves the cursor up n bytes of the concatenated path, crossing
// back over level boundaries (for free, since a crossing consumes no byte
// of its own) as needed.
func (z *ProductZipper) Ascend(n int) bool {
	remaining := n
	for remaining > 0 {
		cur := z.active()
		avail := cur.Depth()
		if avail == 0 {
			if z.level == 0 {
				return false
			}
			z.level--
			continue
		}
		step := remaining
		if step > avail {
			step = avail
		}
		cur.Ascend(step)
		remaining -= step
	}
	return true
}

// AscendByte ascends exactly one byte of the concatenated path.
func (z *ProductZipper) AscendByte() bool { return z.Ascend(1) }

// DescendFirstByte descends to the smallest present child byte at the
// active level, crossing into the next level first if the active level has
// no children but sits at a value.
func (z *ProductZipper) DescendFirstByte() (byte, bool) {
	cur := z.active()
	if b, ok := cur.DescendFirstByte(); ok {
		return b, true
	}
	if !z.atLastLevel() && cur.HasValue() {
		next := z.cursors[z.level+1]
		next.Reset()
		if b, ok := next.DescendFirstByte(); ok {
			z.level++
			return b, true
		}
	}
	return 0, false
}

// ToNextSiblingByte moves to the next sibling byte at the active level.
// Crossing boundaries have no siblings of their own (a crossing isn't a
// byte at the parent level), so this only ever operates within one level.
func (z *ProductZipper) ToNextSiblingByte() (byte, bool) {
	return z.active().ToNextSiblingByte()
}

// Reset returns the zipper to its primary cursor's creation point.
func (z *ProductZipper) Reset() {
	for _, c := range z.cursors {
		c.Reset()
	}
	z.level = 0
}

// ChildMask returns the child mask at the active cursor's position.
func (z *ProductZipper) ChildMask() Mask256 { return z.active().ChildMask() }

// HasValue reports whether the active cursor sits at a value AND the
// active level is the last one, i.e. this position is a genuine member of
// the product, not merely an inter-level crossing point.
func (z *ProductZipper) HasValue() bool {
	return z.atLastLevel() && z.active().HasValue()
}

// OriginPath returns the concatenation of every active level's local path
// (each cursor's Path) walked so far. The cursors' creation prefixes are
// not included, so this is not the concatenation of their absolute paths.
func (z *ProductZipper) OriginPath() []byte {
	var out []byte
	for i := 0; i <= z.level; i++ {
		out = append(out, z.cursors[i].Path()...)
	}
	return out
}

// Path is an alias for OriginPath: a ProductZipper's "local" path and
// "absolute" path coincide, since it has no meaningful single absolute
// trie root of its own.
func (z *ProductZipper) Path() []byte { return z.OriginPath() }

// ToNextVal advances to the next full product member (spec §8 invariant 6:
// enumerates p·q1·...·qn with p, q1, ..., qn each ranging over their
// cursor's leaves, in lexicographic order of the concatenation).
func (z *ProductZipper) ToNextVal() bool {
	for {
		if _, ok := z.DescendFirstByte(); ok {
			if z.HasValue() {
				return true
			}
			continue
		}
		advanced := false
		for z.level > 0 || z.active().Depth() > 0 {
			if _, ok := z.ToNextSiblingByte(); ok {
				advanced = true
				break
			}
			if z.active().Depth() == 0 {
				// At a secondary's root: the crossing consumed no byte, so
				// step back to the previous level without ascending there.
				z.level--
				continue
			}
			if !z.AscendByte() {
				break
			}
		}
		if !advanced {
			return false
		}
		if z.HasValue() {
			return true
		}
	}
}

// SetValue, Graft, and GraftTrie operate on the active cursor's underlying
// trie; they exist so a ProductZipper can itself serve as a write cursor
// when it has no secondaries (N=0 degenerates to a single Cursor).
func (z *ProductZipper) SetValue()               { z.active().SetValue() }
func (z *ProductZipper) Graft(rel []byte)        { z.active().Graft(rel) }
func (z *ProductZipper) GraftTrie(sub *Trie)     { z.active().GraftTrie(sub) }

var (
	_ Positioner = (*Cursor)(nil)
	_ Positioner = (*ProductZipper)(nil)
)
