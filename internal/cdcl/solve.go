package cdcl

import "github.com/gitrdm/d4go/internal/cnf"

// Solve decides satisfiability under the current assumptions (§4.1). It
// interleaves BCP, conflict analysis and clause learning, Luby-sequence
// restarts, and VSIDS-driven decisions; assumption literals are always
// decided (or recognized as already true) before any heuristic decision.
func (s *Solver) Solve() (Result, error) {
	if !s.ok {
		return Unsat, nil
	}
	s.finalConflict = nil

	restartBound := s.nextRestartBound()
	var conflictsThisRestart int64

	for {
		confl, hasConflict := s.Propagate()
		if hasConflict {
			s.conflicts++
			if s.budgetConflicts >= 0 && s.conflicts > s.budgetConflicts {
				return Interrupted, nil
			}
			if s.CurrentLevel() == 0 {
				s.ok = false
				return Unsat, nil
			}
			learnt, backLevel := s.analyze(confl)
			s.CancelUntil(backLevel)
			if len(learnt) == 1 {
				if !s.Enqueue(learnt[0], noReason) {
					s.ok = false
					return Unsat, nil
				}
			} else {
				ref := s.addLearnt(learnt)
				if !s.Enqueue(learnt[0], ref) {
					s.ok = false
					return Unsat, nil
				}
			}
			conflictsThisRestart++
			continue
		}

		if s.budgetProps >= 0 && s.propagations > s.budgetProps {
			return Interrupted, nil
		}
		if conflictsThisRestart >= restartBound && s.CurrentLevel() > 0 {
			s.CancelUntil(0)
			restartBound = s.nextRestartBound()
			conflictsThisRestart = 0
			continue
		}

		lit, ok := s.pickDecision()
		if !ok {
			if s.finalConflict != nil {
				return Unsat, nil
			}
			return Sat, nil
		}
		s.NewDecisionLevel()
		s.Enqueue(lit, noReason)
	}
}

// AssumptionsOnly restricts pickDecision to the assumption stack: once
// every assumption has been consumed without conflict, Solve reports Sat
// immediately instead of inventing further decisions over the remaining
// unassigned variables. The knowledge-compilation driver (component
// H/I, package engine) sets this, since it supplies its own decisions
// one variable at a time via nested Compile calls; standalone SAT solving
// (the zero-value default) still falls back to the VSIDS-ranked decision.
func (s *Solver) SetAssumptionsOnly(only bool) { s.assumptionsOnly = only }

// pickDecision replays unsatisfied assumptions first, in order, treating an
// already-true assumption as a no-op ("just inherits its level") and a
// falsified one as immediate UNSAT with a final conflict expressed over
// assumption literals. Failing that, it falls back to the solver's own
// VSIDS-ranked decision with phase-saving, unless AssumptionsOnly is set.
func (s *Solver) pickDecision() (cnf.Literal, bool) {
	for i, lit := range s.assumptions {
		switch s.Value(lit) {
		case cnf.True:
			continue
		case cnf.False:
			s.buildFinalConflict(i)
			return 0, false
		default:
			return lit, true
		}
	}
	if s.assumptionsOnly {
		return 0, false
	}
	v, ok := s.pickBranchVar()
	if !ok {
		return 0, false
	}
	return cnf.MkLit(v, s.polarity[v]), true
}

// buildFinalConflict records the negated prefix of assumptions up to and
// including the falsified one as the conflict clause: a subset of the
// negated assumptions, per §4.1. This is a simplified stand-in for full
// minimal-unsatisfiable-subset extraction.
func (s *Solver) buildFinalConflict(uptoIdx int) {
	conflict := make([]cnf.Literal, 0, uptoIdx+1)
	for i := 0; i <= uptoIdx; i++ {
		conflict = append(conflict, s.assumptions[i].Neg())
	}
	s.finalConflict = conflict
}

// FinalConflict returns the UNSAT witness over assumption literals produced
// by the most recent Solve call, or nil if the last result was not an
// assumption-level UNSAT.
func (s *Solver) FinalConflict() []cnf.Literal { return s.finalConflict }

// Simplify removes satisfied and detached clauses at decision level 0, per
// §4.1. It refuses (returns false) if top-level propagation already fails.
func (s *Solver) Simplify() bool {
	if s.CurrentLevel() != 0 {
		return true
	}
	if !s.ok {
		return false
	}
	if confl, has := s.Propagate(); has {
		_ = confl
		s.ok = false
		return false
	}
	for i, c := range s.clauses {
		if c.Attached && s.clauseSatisfied(c) {
			s.detachClause(cnf.ClauseRef(i))
		}
	}
	return true
}

func (s *Solver) clauseSatisfied(c *cnf.Clause) bool {
	for _, l := range c.Lits {
		if s.Value(l) == cnf.True {
			return true
		}
	}
	return false
}
