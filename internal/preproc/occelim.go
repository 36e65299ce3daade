package preproc

import "github.com/gitrdm/d4go/internal/cnf"

// OccurrenceElim implements a simplified occurrence-literal elimination
// pass, grounded on preproc/OccurrenceLitElimination.cc: for each clause,
// try dropping its last literal and assume the remaining literals false one
// at a time. If one of them is already forced true, or assuming the rest
// false derives a conflict, the shortened disjunction is already entailed
// by the rest of the formula and the whole clause is redundant and can be
// dropped; otherwise the clause is kept unchanged.
func OccurrenceElim(f *cnf.Formula) (*cnf.Formula, error) {
	s := newSolver(f)

	var kept []*cnf.Clause
	for _, c := range f.Clauses {
		if len(c.Lits) < 2 {
			kept = append(kept, c)
			continue
		}

		s.NewDecisionLevel()
		redundant := false
	rest:
		for _, other := range c.Lits[:len(c.Lits)-1] {
			switch s.Value(other) {
			case cnf.True:
				redundant = true
				break rest
			case cnf.False:
				continue
			default:
				if !s.Enqueue(other.Neg(), cnf.ClauseRef(-1)) {
					redundant = true
					break rest
				}
				if _, conflict := s.Propagate(); conflict {
					redundant = true
					break rest
				}
			}
		}
		s.CancelUntil(s.CurrentLevel() - 1)

		if !redundant {
			kept = append(kept, c)
		}
	}

	out := cloneFormula(f)
	out.Clauses = kept
	return out, nil
}
