package space

import "github.com/HyperCogWizard/mork-go/expr"

// execSymbol is the literal marker of the "metta calculus" rewrite-rule
// convention (spec §4.7): tuples of the form (exec TAG match-pattern
// result-template) stored in the Space are treated as rewrite rules.
const execSymbol = "exec"

// execPattern builds the meta-pattern (exec $TAG $PATTERN $TEMPLATE), used
// to locate every stored rule tuple.
func (s *Space) execPattern() (expr.Expression, error) {
	z := expr.NewZipper()
	if err := z.WriteArity(4); err != nil {
		return expr.Expression{}, err
	}
	payload := s.interner.InternBytes([]byte(execSymbol))
	if err := z.WriteSymbol(payload); err != nil {
		return expr.Expression{}, err
	}
	z.WriteVar()
	z.WriteVar()
	z.WriteVar()
	return expr.New(z.Bytes()), nil
}

// MettaStep performs one step of the metta calculus (spec §4.7, "Metta
// calculus" step): it locates every stored (exec TAG pattern template)
// tuple and executes the equivalent single-pattern, single-template
// Transform for each, returning the total number of rewrites performed
// across every rule. One invocation is exactly one step; convergence
// (running until no rule fires) is the caller's responsibility, matching
// the spec's explicit disclaimer that "convergence/termination is the
// user's responsibility."
func (s *Space) MettaStep() (int, error) {
	meta, err := s.execPattern()
	if err != nil {
		return 0, err
	}

	type rule struct {
		pattern  []byte
		template []byte
	}
	var rules []rule
	_, err = s.Query([]expr.Expression{meta}, func(refs [][]byte) error {
		if len(refs) != 3 {
			return nil
		}
		p := append([]byte(nil), refs[1]...)
		t := append([]byte(nil), refs[2]...)
		rules = append(rules, rule{pattern: p, template: t})
		return nil
	})
	if err != nil {
		return 0, err
	}

	total := 0
	for _, r := range rules {
		n, err := s.Transform(expr.New(r.pattern), expr.New(r.template))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
