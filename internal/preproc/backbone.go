package preproc

import (
	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
)

// Backbone computes the set of literals true in every model of f and
// asserts each one as a unit clause, grounded on preproc/Backbone.cc: solve
// once for a witness model, then for every variable the candidate model
// still assigns, check whether the opposite literal is satisfiable; if not,
// the literal is a backbone fact, otherwise shrink the candidate model to
// the variables the two models still agree on.
func Backbone(f *cnf.Formula) (*cnf.Formula, error) {
	s := newSolver(f)
	res, err := s.Solve()
	if err != nil {
		return nil, err
	}
	if res != cdcl.Sat {
		// Backbone.cc: "Warning the problem is UNSAT" — leave f untouched,
		// the caller's own UNSAT handling (§7) takes over downstream.
		return f, nil
	}

	model := make([]cnf.LitValue, f.NumVars)
	for v := 0; v < f.NumVars; v++ {
		model[v] = s.ValueVar(cnf.Variable(v))
	}
	s.CancelUntil(0)

	var backbone []cnf.Literal
	for v := 0; v < f.NumVars; v++ {
		variable := cnf.Variable(v)
		if model[v] == cnf.Unassigned {
			continue
		}
		candidate := cnf.MkLit(variable, model[v] == cnf.True)

		s.SetAssumptions([]cnf.Literal{candidate.Neg()})
		res, err := s.Solve()
		if err != nil {
			return nil, err
		}
		if res != cdcl.Sat {
			backbone = append(backbone, candidate)
		} else {
			for i := v; i < f.NumVars; i++ {
				if model[i] != s.ValueVar(cnf.Variable(i)) {
					model[i] = cnf.Unassigned
				}
			}
		}
		s.SetAssumptions(nil)
		s.CancelUntil(0)
	}

	out := cloneFormula(f)
	for _, l := range backbone {
		out.AddClause(l)
	}
	return out, nil
}
