package pattern

import "github.com/HyperCogWizard/mork-go/expr"

// Compile lowers the non-literal remainder of a pattern expression (the
// bytes after its LiteralPrefix, per spec §4.4: "a pattern is compiled
// once per query, ... the constant prefix is already positioned on the
// cursor") into a Node tree. buf must begin exactly at the first byte that
// needs interpretation (typically a NewVar, VarRef, or a literal
// Symbol/Arity nested below one).
func Compile(buf []byte) (*Node, error) {
	if len(buf) == 0 {
		return &Node{Op: OpEnd}, nil
	}
	var siblings []*Node
	pos := 0
	for pos < len(buf) {
		n, next, err := compileAt(buf, pos)
		if err != nil {
			return nil, err
		}
		siblings = append(siblings, n)
		pos = next
	}
	if len(siblings) == 1 {
		return siblings[0], nil
	}
	return &Node{Op: OpSeq, Children: siblings}, nil
}

// CompileAll compiles each pattern's remainder (as returned by the driver
// after stripping each pattern's LiteralPrefix) into a Program, in the
// order the patterns should be matched.
func CompileAll(bufs [][]byte) (Program, error) {
	prog := make(Program, 0, len(bufs))
	for _, b := range bufs {
		n, err := Compile(b)
		if err != nil {
			return nil, err
		}
		prog = append(prog, n)
	}
	return prog, nil
}

func compileAt(buf []byte, pos int) (*Node, int, error) {
	if pos >= len(buf) {
		return nil, pos, expr.ErrTruncated
	}
	tag := expr.Decode(buf[pos])
	switch tag.Kind {
	case expr.KindReserved:
		return nil, pos, expr.ErrReserved
	case expr.KindNewVar:
		return &Node{Op: OpNewVar}, pos + 1, nil
	case expr.KindVarRef:
		return &Node{Op: OpVarRef, Index: tag.Payload}, pos + 1, nil
	case expr.KindSymbol:
		need := tag.TokenLen()
		if pos+need > len(buf) {
			return nil, pos, expr.ErrTruncated
		}
		payload := make([]byte, tag.Payload)
		copy(payload, buf[pos+1:pos+need])
		return &Node{Op: OpSymbol, Sym: payload}, pos + need, nil
	case expr.KindArity:
		a := tag.Payload
		children := make([]*Node, 0, a)
		next := pos + 1
		for i := 0; i < a; i++ {
			child, p, err := compileAt(buf, next)
			if err != nil {
				return nil, pos, err
			}
			children = append(children, child)
			next = p
		}
		return &Node{Op: OpArity, Arity: a, Children: children}, next, nil
	}
	return nil, pos, expr.ErrReserved
}
