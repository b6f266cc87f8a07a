package expr

// Zipper is a mutable write cursor into a growing encoded buffer. It never
// allocates on behalf of the caller beyond the backing slice's own growth:
// every write appends, so writing past the capacity of a buffer supplied
// via NewZipperInto grows it rather than failing.
type Zipper struct {
	buf []byte
}

// NewZipper returns a Zipper that owns a freshly allocated buffer.
func NewZipper() *Zipper {
	return &Zipper{buf: make([]byte, 0, 64)}
}

// NewZipperInto returns a Zipper that appends into (and may grow) buf.
func NewZipperInto(buf []byte) *Zipper {
	return &Zipper{buf: buf}
}

// Bytes returns the bytes written so far.
func (z *Zipper) Bytes() []byte { return z.buf }

// Len returns the number of bytes written so far.
func (z *Zipper) Len() int { return len(z.buf) }

// WriteSymbol writes a SymbolSize(len(payload)) tag followed by payload
// verbatim. payload is typically an interner handle (see package symbol).
func (z *Zipper) WriteSymbol(payload []byte) error {
	tag, err := EncodeSymbolSize(len(payload))
	if err != nil {
		return err
	}
	z.buf = append(z.buf, tag)
	z.buf = append(z.buf, payload...)
	return nil
}

// WriteArity writes an Arity(a) tag. The caller must follow with exactly a
// encoded sub-expressions.
func (z *Zipper) WriteArity(a int) error {
	tag, err := EncodeArity(a)
	if err != nil {
		return err
	}
	z.buf = append(z.buf, tag)
	return nil
}

// WriteVar writes a NewVar tag, introducing a fresh variable.
func (z *Zipper) WriteVar() {
	z.buf = append(z.buf, EncodeNewVar())
}

// WriteVarRef writes a VarRef(i) tag.
func (z *Zipper) WriteVarRef(i int) error {
	tag, err := EncodeVarRef(i)
	if err != nil {
		return err
	}
	z.buf = append(z.buf, tag)
	return nil
}

// AppendRaw copies a well-formed encoded sub-expression's bytes verbatim,
// with no re-encoding or symbol renumbering. Used by Substitute to splice a
// captured reference's bytes directly into a template instantiation.
func (z *Zipper) AppendRaw(raw []byte) {
	z.buf = append(z.buf, raw...)
}

// ExprZipper is a read cursor over an encoded buffer, used to walk sibling
// tokens one at a time (e.g. the children of an Arity compound).
type ExprZipper struct {
	buf []byte
	pos int
}

// NewExprZipper returns a read cursor positioned at the start of e.
func NewExprZipper(e Expression) *ExprZipper {
	return &ExprZipper{buf: e.Buf}
}

// Item decodes the tag at the cursor. For KindSymbol, the returned payload
// slice aliases the underlying buffer.
func (z *ExprZipper) Item() (Tag, []byte, error) {
	if z.pos >= len(z.buf) {
		return Tag{}, nil, ErrTruncated
	}
	tag := Decode(z.buf[z.pos])
	if tag.Kind == KindReserved {
		return tag, nil, ErrReserved
	}
	if tag.Kind == KindSymbol {
		need := tag.TokenLen()
		if z.pos+need > len(z.buf) {
			return tag, nil, ErrTruncated
		}
		return tag, z.buf[z.pos+1 : z.pos+need], nil
	}
	return tag, nil, nil
}

// Subexpr returns the Expression starting at the cursor's current position.
func (z *ExprZipper) Subexpr() Expression {
	return Expression{Buf: z.buf[z.pos:]}
}

// Span returns the byte length of the expression rooted at the cursor.
func (z *ExprZipper) Span() (int, error) {
	return spanAt(z.buf[z.pos:])
}

// Next advances the cursor past the full sub-expression (or single token,
// for NewVar/VarRef) currently under it, positioning it at the next
// sibling token.
func (z *ExprZipper) Next() error {
	n, err := z.Span()
	if err != nil {
		return err
	}
	z.pos += n
	return nil
}

// Pos returns the cursor's byte offset within its buffer.
func (z *ExprZipper) Pos() int { return z.pos }

// AtEnd reports whether the cursor has consumed the whole buffer.
func (z *ExprZipper) AtEnd() bool { return z.pos >= len(z.buf) }
