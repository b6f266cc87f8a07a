package expr

import "errors"

// ErrNewVarInTemplate is returned by Substitute when the template contains
// a NewVar byte, which is illegal (spec §4.6): templates only ever read
// references via VarRef, they never introduce new variables.
var ErrNewVarInTemplate = errors.New("expr: NewVar is illegal in a template")

// Substitute instantiates template against refs, writing the result into z.
// Literal symbols and arities are copied verbatim; VarRef(i) is replaced by
// a direct byte copy of refs[i] (itself a well-formed encoded
// sub-expression) with no re-encoding or renumbering.
func Substitute(template Expression, refs [][]byte, z *Zipper) error {
	_, err := substituteAt(template.Buf, 0, refs, z)
	return err
}

func substituteAt(buf []byte, pos int, refs [][]byte, z *Zipper) (int, error) {
	if pos >= len(buf) {
		return pos, ErrTruncated
	}
	tag := Decode(buf[pos])
	switch tag.Kind {
	case KindReserved:
		return pos, ErrReserved
	case KindNewVar:
		return pos, ErrNewVarInTemplate
	case KindVarRef:
		if tag.Payload < 0 || tag.Payload >= len(refs) {
			return pos, errors.New("expr: VarRef index out of range of captured references")
		}
		z.AppendRaw(refs[tag.Payload])
		return pos + 1, nil
	case KindSymbol:
		need := tag.TokenLen()
		if pos+need > len(buf) {
			return pos, ErrTruncated
		}
		if err := z.WriteSymbol(buf[pos+1 : pos+need]); err != nil {
			return pos, err
		}
		return pos + need, nil
	case KindArity:
		if err := z.WriteArity(tag.Payload); err != nil {
			return pos, err
		}
		next := pos + 1
		for i := 0; i < tag.Payload; i++ {
			var err error
			next, err = substituteAt(buf, next, refs, z)
			if err != nil {
				return pos, err
			}
		}
		return next, nil
	}
	return pos, ErrReserved
}
