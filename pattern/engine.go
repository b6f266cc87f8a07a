package pattern

import (
	"errors"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/trie"
)

// ErrAbort is returned by an Action to stop matching immediately; Run
// propagates it to the caller (spec §4.5's "action callback may return an
// abort").
var ErrAbort = errors.New("pattern: matching aborted")

// errInvalidVarRef is returned when a compiled VarRef points past the
// references captured so far — a malformed pattern (scope violation of
// spec §3.2).
var errInvalidVarRef = errors.New("pattern: VarRef has no matching capture")

// Action is invoked once per match, with the references captured by every
// NewVar encountered, in order of introduction. Returning a non-nil error
// (typically ErrAbort) stops the whole search; returning nil continues
// backtracking over any remaining alternatives.
type Action func(refs [][]byte) error

// Run drives cur (a *trie.Cursor or a *trie.ProductZipper) according to
// prog, invoking action at every full match. cur must already be
// positioned past every pattern's constant prefix (spec §4.7 step 1/2).
func Run(cur trie.Positioner, prog Program, action Action) error {
	return matchProgram(cur, prog, 0, nil, action)
}

func matchProgram(cur trie.Positioner, prog Program, idx int, refs [][]byte, action Action) error {
	if idx == len(prog) {
		return action(refs)
	}
	return matchNode(cur, prog[idx], refs, func(r [][]byte) error {
		return matchProgram(cur, prog, idx+1, r, action)
	})
}

func withRef(refs [][]byte, ref []byte) [][]byte {
	out := make([][]byte, len(refs)+1)
	copy(out, refs)
	out[len(refs)] = ref
	return out
}

// descendLiteral descends cur through bytes in order, rolling back
// whatever prefix of it succeeded if a later byte fails.
func descendLiteral(cur trie.Positioner, bytes []byte) bool {
	for i, b := range bytes {
		if !cur.DescendToByte(b) {
			cur.Ascend(i)
			return false
		}
	}
	return true
}

func matchNode(cur trie.Positioner, n *Node, refs [][]byte, cont func([][]byte) error) error {
	switch n.Op {
	case OpSymbol:
		return matchSymbol(cur, n, refs, cont)
	case OpArity:
		return matchArity(cur, n, refs, cont)
	case OpNewVar:
		return matchNewVar(cur, refs, cont)
	case OpVarRef:
		return matchVarRef(cur, n, refs, cont)
	case OpEnd:
		if cur.HasValue() {
			return cont(refs)
		}
		return nil
	case OpSeq:
		return matchChildren(cur, n.Children, 0, refs, cont)
	}
	return nil
}

// matchSymbol implements ITER_VAR_SYMBOL: either the data holds exactly
// this literal symbol, or the data itself holds a NewVar/VarRef tag at
// this position (spec §4.4).
func matchSymbol(cur trie.Positioner, n *Node, refs [][]byte, cont func([][]byte) error) error {
	tagByte, err := expr.EncodeSymbolSize(len(n.Sym))
	if err != nil {
		return err
	}
	full := make([]byte, 0, 1+len(n.Sym))
	full = append(full, tagByte)
	full = append(full, n.Sym...)

	if descendLiteral(cur, full) {
		err := cont(refs)
		cur.Ascend(len(full))
		if err != nil {
			return err
		}
	}
	return tryVariableWildcard(cur, refs, cont)
}

// matchArity implements ITER_VAR_ARITY composed with matching each
// sub-expression in sequence (ITER_ARITY, then ITER_EXPR over each of the
// a children), or the NewVar/VarRef wildcard (spec §4.4).
func matchArity(cur trie.Positioner, n *Node, refs [][]byte, cont func([][]byte) error) error {
	tagByte, err := expr.EncodeArity(n.Arity)
	if err != nil {
		return err
	}
	if cur.DescendToByte(tagByte) {
		err := matchChildren(cur, n.Children, 0, refs, cont)
		cur.AscendByte()
		if err != nil {
			return err
		}
	}
	return tryVariableWildcard(cur, refs, cont)
}

func matchChildren(cur trie.Positioner, children []*Node, i int, refs [][]byte, cont func([][]byte) error) error {
	if i == len(children) {
		return cont(refs)
	}
	return matchNode(cur, children[i], refs, func(r [][]byte) error {
		return matchChildren(cur, children, i+1, r, cont)
	})
}

// matchNewVar implements BEGIN_RANGE, ITER_EXPR, FINALIZE_RANGE: the
// variable binds to the textually smallest sub-expression rooted at the
// cursor's current position (spec §4.5).
func matchNewVar(cur trie.Positioner, refs [][]byte, cont func([][]byte) error) error {
	start := len(cur.OriginPath())
	return matchArbitrary(cur, func() error {
		full := cur.OriginPath()
		captured := append([]byte(nil), full[start:]...)
		return cont(withRef(refs, captured))
	})
}

// matchVarRef implements REFER_RANGE: the prior capture is compiled on the
// fly with the same rules as any pattern and matched against the cursor,
// so two occurrences of the same variable constrain matches to equal
// sub-expressions (spec §4.5).
func matchVarRef(cur trie.Positioner, n *Node, refs [][]byte, cont func([][]byte) error) error {
	if n.Index < 0 || n.Index >= len(refs) {
		return errInvalidVarRef
	}
	sub, err := Compile(refs[n.Index])
	if err != nil {
		return err
	}
	return matchNode(cur, sub, refs, cont)
}

// tryVariableWildcard matches a bare NewVar or VarRef(i) tag present as an
// immediate child, the one-byte case of ITER_VARIABLES.
func tryVariableWildcard(cur trie.Positioner, refs [][]byte, cont func([][]byte) error) error {
	mask := cur.ChildMask()
	try := func(b byte) (bool, error) {
		if !mask.Test(b) {
			return true, nil
		}
		if !cur.DescendToByte(b) {
			return true, nil
		}
		err := cont(refs)
		cur.AscendByte()
		return err == nil, err
	}
	if more, err := try(0xC0); !more {
		return err
	}
	for i := 0; i <= 0x3F; i++ {
		if more, err := try(byte(0x80 | i)); !more {
			return err
		}
	}
	return nil
}

// matchArbitrary implements ITER_EXPR: match one arbitrary sub-expression
// rooted at the cursor's current position, trying every present child and
// (for Symbol/Arity tags) every byte of their payload or sub-expressions,
// since those bytes are themselves trie branch points when symbols or
// compounds share prefixes.
func matchArbitrary(cur trie.Positioner, cont func() error) error {
	return tryEachChild(cur, func(b byte) error {
		tag := expr.Decode(b)
		switch tag.Kind {
		case expr.KindNewVar, expr.KindVarRef:
			return cont()
		case expr.KindSymbol:
			return descendRawBytes(cur, tag.Payload, cont)
		case expr.KindArity:
			return matchNArbitrary(cur, tag.Payload, cont)
		default:
			return nil
		}
	})
}

func matchNArbitrary(cur trie.Positioner, n int, cont func() error) error {
	if n == 0 {
		return cont()
	}
	return matchArbitrary(cur, func() error {
		return matchNArbitrary(cur, n-1, cont)
	})
}

// descendRawBytes walks n further bytes of raw (opaque) payload content,
// trying every present branch at each position, before invoking cont.
func descendRawBytes(cur trie.Positioner, n int, cont func() error) error {
	if n == 0 {
		return cont()
	}
	return tryEachChild(cur, func(byte) error {
		return descendRawBytes(cur, n-1, cont)
	})
}

// tryEachChild descends into every present child byte at the cursor's
// current position, calling f with that byte, ascending back afterward,
// and continuing to the next sibling unless f returns a non-nil error.
func tryEachChild(cur trie.Positioner, f func(b byte) error) error {
	mask := cur.ChildMask()
	var outerErr error
	mask.Each(func(b byte) bool {
		if !cur.DescendToByte(b) {
			return true
		}
		err := f(b)
		cur.AscendByte()
		if err != nil {
			outerErr = err
			return false
		}
		return true
	})
	return outerErr
}
