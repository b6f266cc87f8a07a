package space

import (
	"github.com/HyperCogWizard/mork-go/expr"
	"github.com/HyperCogWizard/mork-go/pattern"
	"github.com/HyperCogWizard/mork-go/trie"
)

// MatchFunc is invoked once per match found by Query, with the references
// captured by each pattern's variables, patterns concatenated in order.
// Returning a non-nil error (e.g. pattern.ErrAbort) stops the search.
type MatchFunc func(refs [][]byte) error

// patternCursor splits e's LiteralPrefix and returns a read cursor
// positioned past it, plus e's remainder bytes for compilation (spec
// §4.7 step 1/2).
func (s *Space) patternCursor(e expr.Expression) (*trie.Cursor, []byte, func(), error) {
	buf, err := e.Bytes()
	if err != nil {
		return nil, nil, nil, err
	}
	prefix, err := expr.New(buf).LiteralPrefix()
	if err != nil {
		return nil, nil, nil, err
	}
	permit, err := s.auth.AcquireRead(prefix)
	if err != nil {
		return nil, nil, nil, err
	}
	cur := trie.NewReadCursor(s.trie, prefix)
	return cur, buf[len(prefix):], func() { permit.Close() }, nil
}

// templateCursor splits t's LiteralPrefix and returns an exclusive write
// cursor positioned past it, plus t's remainder bytes for substitution.
func (s *Space) templateCursor(t expr.Expression) (*trie.Cursor, []byte, func(), error) {
	buf, err := t.Bytes()
	if err != nil {
		return nil, nil, nil, err
	}
	prefix, err := expr.New(buf).LiteralPrefix()
	if err != nil {
		return nil, nil, nil, err
	}
	permit, err := s.auth.AcquireWrite(prefix)
	if err != nil {
		return nil, nil, nil, err
	}
	cur := trie.NewWriteCursor(s.trie, prefix)
	return cur, buf[len(prefix):], func() { permit.Close() }, nil
}

// Query runs a multi-pattern conjunction against the Space and invokes
// action at every match; no templates are written (spec §4.7: "query is
// the special case with no templates").
func (s *Space) Query(patterns []expr.Expression, action MatchFunc) (int, error) {
	if len(patterns) == 0 {
		return 0, nil
	}
	cursors := make([]*trie.Cursor, len(patterns))
	remainders := make([][]byte, len(patterns))
	var releases []func()
	defer func() {
		for _, r := range releases {
			r()
		}
	}()
	for i, p := range patterns {
		cur, rem, release, err := s.patternCursor(p)
		if err != nil {
			return 0, err
		}
		cursors[i] = cur
		remainders[i] = rem
		releases = append(releases, release)
	}

	prog, err := pattern.CompileAll(remainders)
	if err != nil {
		return 0, err
	}

	var pos trie.Positioner
	if len(cursors) == 1 {
		pos = cursors[0]
	} else {
		secondaries := make([]*trie.Cursor, len(cursors)-1)
		copy(secondaries, cursors[1:])
		pos = trie.NewProductZipper(cursors[0], secondaries...)
	}

	matches := 0
	err = pattern.Run(pos, prog, func(refs [][]byte) error {
		matches++
		return action(refs)
	})
	if err != nil && err != pattern.ErrAbort {
		return matches, err
	}
	return matches, nil
}

// Transform is the single-pattern, single-template case of
// TransformMultiMulti.
func (s *Space) Transform(p, t expr.Expression) (int, error) {
	return s.TransformMultiMulti([]expr.Expression{p}, []expr.Expression{t})
}

// TransformMulti rewrites every match of a multi-pattern conjunction
// through a single template (a convenience composition of
// TransformMultiMulti, not a distinct primitive).
func (s *Space) TransformMulti(patterns []expr.Expression, t expr.Expression) (int, error) {
	return s.TransformMultiMulti(patterns, []expr.Expression{t})
}

// TransformMultiMulti executes one rewriting pass (spec §4.7): for each
// match of the pattern conjunction, every template is instantiated against
// the match's captured references and written into the Space under its
// own exclusive write cursor.
func (s *Space) TransformMultiMulti(patterns []expr.Expression, templates []expr.Expression) (int, error) {
	writeCursors := make([]*trie.Cursor, len(templates))
	templateRemainders := make([][]byte, len(templates))
	var releases []func()
	defer func() {
		for _, r := range releases {
			r()
		}
	}()
	for i, t := range templates {
		cur, rem, release, err := s.templateCursor(t)
		if err != nil {
			return 0, err
		}
		writeCursors[i] = cur
		templateRemainders[i] = rem
		releases = append(releases, release)
	}

	matches, err := s.Query(patterns, func(refs [][]byte) error {
		for i, rem := range templateRemainders {
			z := expr.NewZipper()
			if len(rem) > 0 {
				if err := expr.Substitute(expr.New(rem), refs, z); err != nil {
					return err
				}
			}
			writeCursors[i].Graft(z.Bytes())
		}
		return nil
	})
	return matches, err
}
