// Package heuristics implements the variable-scoring, phase-selection, and
// priority-construction collaborators (component F), per §4.5.
package heuristics

import (
	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// ScoringMethod names a selectable variable-scoring strategy (§4.5, §6's
// -vh flag).
type ScoringMethod int

const (
	VSADS ScoringMethod = iota
	VSIDS
	DLCS
	JWTS
	MOM
)

// ParseScoringMethod maps a -vh flag value to a ScoringMethod.
func ParseScoringMethod(name string) (ScoringMethod, bool) {
	switch name {
	case "VSADS":
		return VSADS, true
	case "VSIDS":
		return VSIDS, true
	case "DLCS":
		return DLCS, true
	case "JW-TS":
		return JWTS, true
	case "MOM":
		return MOM, true
	default:
		return 0, false
	}
}

// Scorer exposes score(var) -> real over the clauses currently visible
// through an occurrence.Manager, optionally consulting a CDCL solver's
// VSIDS activity table.
type Scorer struct {
	method ScoringMethod
	mgr    *occurrence.Manager
	solver *cdcl.Solver
}

// NewScorer builds a Scorer for method, backed by mgr's current clause
// view and (for VSIDS/VSADS) solver's activity table.
func NewScorer(method ScoringMethod, mgr *occurrence.Manager, solver *cdcl.Solver) *Scorer {
	return &Scorer{method: method, mgr: mgr, solver: solver}
}

// Score returns v's score under the configured method; higher is more
// preferred.
func (s *Scorer) Score(v cnf.Variable) float64 {
	switch s.method {
	case VSIDS:
		return s.solver.Activity(v)
	case VSADS:
		return s.solver.Activity(v) + float64(s.occurrenceCount(v))
	case DLCS:
		return float64(s.occurrenceCount(v))
	case JWTS:
		return s.jwScore(v)
	case MOM:
		return s.momScore(v)
	default:
		return 0
	}
}

func (s *Scorer) occurrenceCount(v cnf.Variable) int {
	pos := cnf.MkLit(v, true)
	neg := cnf.MkLit(v, false)
	count := 0
	for _, ci := range s.mgr.CurrentClauses() {
		for _, l := range s.mgr.Clause(ci).Lits {
			if l == pos || l == neg {
				count++
				break
			}
		}
	}
	return count
}

// jwScore implements the Jeroslow-Wang two-sided score: sum over clauses
// containing v (either polarity) of 2^-len(clause).
func (s *Scorer) jwScore(v cnf.Variable) float64 {
	pos := cnf.MkLit(v, true)
	neg := cnf.MkLit(v, false)
	var total float64
	for _, ci := range s.mgr.CurrentClauses() {
		c := s.mgr.Clause(ci)
		for _, l := range c.Lits {
			if l == pos || l == neg {
				total += jwWeight(len(c.Lits))
				break
			}
		}
	}
	return total
}

func jwWeight(clauseLen int) float64 {
	w := 1.0
	for i := 0; i < clauseLen; i++ {
		w /= 2
	}
	return w
}

// momScore implements min-occurrences-in-(shortest)-clauses: occurrences in
// clauses of the minimum observed length, weighted to favor shorter
// clauses (the classic MOM tie-break heuristic).
func (s *Scorer) momScore(v cnf.Variable) float64 {
	pos := cnf.MkLit(v, true)
	neg := cnf.MkLit(v, false)
	minLen := -1
	for _, ci := range s.mgr.CurrentClauses() {
		n := len(s.mgr.Clause(ci).Lits)
		if minLen == -1 || n < minLen {
			minLen = n
		}
	}
	if minLen == -1 {
		return 0
	}
	posCount, negCount := 0, 0
	for _, ci := range s.mgr.CurrentClauses() {
		c := s.mgr.Clause(ci)
		if len(c.Lits) != minLen {
			continue
		}
		for _, l := range c.Lits {
			if l == pos {
				posCount++
			}
			if l == neg {
				negCount++
			}
		}
	}
	const momFactor = 1 << 10
	return float64((posCount+negCount)*momFactor + posCount*negCount)
}
