package preproc

import "github.com/gitrdm/d4go/internal/cnf"

// Vivify implements the vivification procedure of Piette, Hamadi & Sais
// (ECAI 2008), grounded on preproc/Vivification.cc: for each clause, assume
// the negation of its literals one at a time under unit propagation; a
// conflict before the clause is exhausted lets the clause shrink to the
// literals tried so far (at least one of them must hold), and a literal
// already forced true makes the whole clause redundant. A literal already
// forced false contributes nothing and is dropped outright.
func Vivify(f *cnf.Formula) (*cnf.Formula, error) {
	s := newSolver(f)

	var kept []*cnf.Clause
	for _, c := range f.Clauses {
		if len(c.Lits) < 2 {
			// A unit clause forces its own literal, so the scan below would
			// find it true and drop it; keep it unchanged.
			kept = append(kept, c)
			continue
		}
		s.NewDecisionLevel()

		var shortened []cnf.Literal
		keepClause := true
	literals:
		for _, l := range c.Lits {
			switch s.Value(l) {
			case cnf.True:
				keepClause = false
				break literals
			case cnf.False:
				continue // permanently false elsewhere in the formula
			default:
				shortened = append(shortened, l)
				if !s.Enqueue(l.Neg(), cnf.ClauseRef(-1)) {
					keepClause = false
					break literals
				}
				if _, conflict := s.Propagate(); conflict {
					break literals
				}
			}
		}
		s.CancelUntil(s.CurrentLevel() - 1)

		if !keepClause {
			continue // subsumed by an already-forced literal
		}
		if len(shortened) == 0 {
			shortened = c.Lits // nothing assumable; keep the original clause
		}
		kept = append(kept, cnf.NewClause(shortened...))
	}

	out := cloneFormula(f)
	out.Clauses = kept
	return out, nil
}
