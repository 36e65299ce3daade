// Package preproc implements the one-shot preprocessing pipeline named by
// §6's `-preproc <flags>` (backbone, vivification, occElimination) plus a
// Forget function, each grounded on the corresponding pass in crillab/d4's
// preproc/ directory. Every pipeline stage has the shape
// func(*cnf.Formula) (*cnf.Formula, error) and runs once before the main
// recursion, never interleaved with it — the Non-goals "no incremental
// re-compilation" and "no parallel execution" hold throughout. Forget
// takes the variable to eliminate as well, is not a pipeline stage, and
// is not run by Run.
package preproc

import (
	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
)

// newSolver builds a fresh CDCL core loaded with f's clauses, in standalone
// (non assumptions-only) mode, suitable for the one-off satisfiability
// probes every pass below needs.
func newSolver(f *cnf.Formula) *cdcl.Solver {
	s := cdcl.New(f.NumVars)
	for _, c := range f.Clauses {
		s.AddClause(c.Lits...)
	}
	return s
}

// cloneFormula copies f's variable count, weights and projection mask with
// a fresh (but independently mutable) clause slice, so a stage can add or
// drop clauses without aliasing the caller's Formula.
func cloneFormula(f *cnf.Formula) *cnf.Formula {
	out := cnf.NewFormula(f.NumVars)
	out.Clauses = make([]*cnf.Clause, len(f.Clauses))
	copy(out.Clauses, f.Clauses)
	for l, w := range f.Weight {
		out.Weight[l] = w
	}
	if len(f.Projected) > 0 {
		out.Projected = append([]bool(nil), f.Projected...)
	}
	return out
}
