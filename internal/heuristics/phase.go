package heuristics

import (
	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// PhaseMethod names a selectable phase (polarity) heuristic (§4.5, §6's
// -ph flag).
type PhaseMethod int

const (
	PhaseTrue PhaseMethod = iota
	PhaseFalse
	PhasePolarity
	PhaseOccurrence
)

// ParsePhaseMethod maps a -ph flag value to a PhaseMethod.
func ParsePhaseMethod(name string) (PhaseMethod, bool) {
	switch name {
	case "TRUE":
		return PhaseTrue, true
	case "FALSE":
		return PhaseFalse, true
	case "POLARITY":
		return PhasePolarity, true
	case "OCCURRENCE":
		return PhaseOccurrence, true
	default:
		return 0, false
	}
}

// PhaseSelector decides which polarity to try first for a decision
// variable (§4.6 step 2 of compile_decision_node).
type PhaseSelector struct {
	method         PhaseMethod
	solver         *cdcl.Solver
	mgr            *occurrence.Manager
	reversePolarity bool
}

// NewPhaseSelector builds a PhaseSelector. reversePolarity implements the
// -rp flag: the computed phase is flipped before use.
func NewPhaseSelector(method PhaseMethod, solver *cdcl.Solver, mgr *occurrence.Manager, reversePolarity bool) *PhaseSelector {
	return &PhaseSelector{method: method, solver: solver, mgr: mgr, reversePolarity: reversePolarity}
}

// Positive reports whether v's first-tried branch should assign it true.
func (p *PhaseSelector) Positive(v cnf.Variable) bool {
	var phase bool
	switch p.method {
	case PhaseTrue:
		phase = true
	case PhaseFalse:
		phase = false
	case PhasePolarity:
		phase = p.solver.SavedPolarity(v)
	case PhaseOccurrence:
		phase = p.occurrenceMajorityPositive(v)
	}
	if p.reversePolarity {
		phase = !phase
	}
	return phase
}

func (p *PhaseSelector) occurrenceMajorityPositive(v cnf.Variable) bool {
	pos := cnf.MkLit(v, true)
	neg := cnf.MkLit(v, false)
	posCount, negCount := 0, 0
	for _, ci := range p.mgr.CurrentClauses() {
		for _, l := range p.mgr.Clause(ci).Lits {
			if l == pos {
				posCount++
			}
			if l == neg {
				negCount++
			}
		}
	}
	return posCount >= negCount
}
