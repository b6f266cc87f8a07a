package sexpr

import (
	"fmt"

	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/symbol"
)

// Intern is the hook a parser uses to turn bare symbol/quoted-string text
// into the payload bytes actually written into the encoded expression.
// Pass (symbol.Table).InternBytes for the interning build, or
// symbol.Identity{}.InternBytes for the non-interning fallback.
type Intern func(text []byte) []byte

// parser turns a token stream into expr.Zipper writes, tracking named
// variables ($x) so repeated occurrences of the same name become a VarRef
// to the first occurrence's capture rather than a second NewVar — the
// text surface's one convenience the byte encoding itself doesn't carry
// (spec §6.2; NewVar/VarRef are themselves anonymous).
type parser struct {
	lex     *lexer
	tok     token
	intern  Intern
	names   map[string]int
	nextVar int
}

func newParser(buf []byte, intern Intern) (*parser, error) {
	p := &parser{lex: newLexer(buf), intern: intern, names: make(map[string]int)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// Parse decodes a single S-expression from buf, interning symbol text with
// intern. Trailing whitespace after the expression is permitted; any other
// trailing content is a syntax error.
func Parse(buf []byte, intern Intern) (expr.Expression, error) {
	p, err := newParser(buf, intern)
	if err != nil {
		return expr.Expression{}, err
	}
	z := expr.NewZipper()
	if err := p.parseInto(z); err != nil {
		return expr.Expression{}, err
	}
	if p.tok.kind != tokEOF {
		return expr.Expression{}, fmt.Errorf("%w: trailing input after expression", ErrSyntax)
	}
	return expr.New(z.Bytes()), nil
}

// ParseAll decodes every top-level S-expression found in buf in sequence,
// e.g. one fact per line of a dump file (spec §6.2 applied repeatedly).
// Named variables are scoped to a single top-level expression: "$x" in one
// expression has no relation to "$x" in the next, matching the byte
// encoding's own rule that a VarRef is only valid within the expression
// that introduced it (spec §3.2).
func ParseAll(buf []byte, intern Intern) ([]expr.Expression, error) {
	p, err := newParser(buf, intern)
	if err != nil {
		return nil, err
	}
	var out []expr.Expression
	for p.tok.kind != tokEOF {
		p.names = make(map[string]int)
		p.nextVar = 0
		z := expr.NewZipper()
		if err := p.parseInto(z); err != nil {
			return nil, err
		}
		out = append(out, expr.New(z.Bytes()))
	}
	return out, nil
}

func (p *parser) parseInto(z *expr.Zipper) error {
	switch p.tok.kind {
	case tokLParen:
		return p.parseCompound(z)
	case tokVar:
		name := p.tok.text
		if idx, ok := p.names[name]; ok {
			if err := z.WriteVarRef(idx); err != nil {
				return err
			}
		} else {
			p.names[name] = p.nextVar
			p.nextVar++
			z.WriteVar()
		}
		return p.advance()
	case tokVarRef:
		if p.tok.n < 1 {
			return fmt.Errorf("%w: VarRef index must be >= 1", ErrSyntax)
		}
		if err := z.WriteVarRef(p.tok.n - 1); err != nil {
			return err
		}
		return p.advance()
	case tokSymbol:
		payload := p.intern([]byte(p.tok.text))
		if err := z.WriteSymbol(payload); err != nil {
			return err
		}
		return p.advance()
	case tokRParen:
		return fmt.Errorf("%w: unexpected ')'", ErrSyntax)
	default:
		return fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
}

func (p *parser) parseCompound(z *expr.Zipper) error {
	if err := p.advance(); err != nil { // consume '('
		return err
	}
	var children [][]byte
	for p.tok.kind != tokRParen {
		if p.tok.kind == tokEOF {
			return fmt.Errorf("%w: unterminated '('", ErrSyntax)
		}
		cz := expr.NewZipper()
		if err := p.parseInto(cz); err != nil {
			return err
		}
		children = append(children, cz.Bytes())
	}
	if err := p.advance(); err != nil { // consume ')'
		return err
	}
	if err := z.WriteArity(len(children)); err != nil {
		return err
	}
	for _, c := range children {
		z.AppendRaw(c)
	}
	return nil
}

// InternOf adapts a symbol.Interner's InternBytes method to Intern.
func InternOf(in symbol.Interner) Intern {
	return in.InternBytes
}
