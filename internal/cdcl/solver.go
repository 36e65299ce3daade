// Package cdcl implements the CDCL SAT core (component B): two-watched
// literal propagation, first-UIP conflict analysis with clause learning,
// VSIDS variable activity, Luby-sequence restarts and assumption-based
// solving, per §4.1 of the specification.
package cdcl

import (
	"math"
	"math/rand"

	"github.com/gitrdm/d4go/internal/cnf"
)

// Result is the outcome of Solve.
type Result int8

const (
	Unknown Result = iota
	Sat
	Unsat
	Interrupted
)

const noReason = cnf.ClauseRef(-1)

type watcher struct {
	clause  cnf.ClauseRef
	blocker cnf.Literal
}

// Solver is the CDCL engine described in §4.1. It owns the clause arena
// (original and learnt clauses alike, distinguished by Clause.Learnt), the
// partial assignment and trail of §3, and the watch-list invariant: every
// attached non-unit clause appears in the watch lists of its first two
// literals.
type Solver struct {
	nVars int

	clauses []*cnf.Clause
	watches [][]watcher // indexed by Literal.Index()

	assigns   []cnf.LitValue
	varLevel  []int32
	varReason []cnf.ClauseRef
	polarity  []bool

	trail    []cnf.Literal
	trailLim []int32
	qHead    int

	activity []float64
	varIncr  float64
	varDecay float64

	assumptions     []cnf.Literal
	assumptionsOnly bool
	ok              bool // false once a root-level conflict has been derived

	seen           []bool
	analyzeStack   []cnf.Literal
	analyzeToClear []cnf.Literal

	conflictsSinceRestart int64
	lubyIndex             int64
	restartInc            float64

	learntActivityInc  float64
	learntActivityDecay float64

	budgetConflicts int64 // -1: unlimited
	budgetProps     int64
	conflicts       int64
	propagations    int64

	finalConflict []cnf.Literal

	rng *rand.Rand
}

// New allocates a Solver over nVars variables.
func New(nVars int) *Solver {
	s := &Solver{
		nVars:               nVars,
		watches:             make([][]watcher, nVars*2),
		assigns:             make([]cnf.LitValue, nVars),
		varLevel:            make([]int32, nVars),
		varReason:           make([]cnf.ClauseRef, nVars),
		polarity:            make([]bool, nVars),
		activity:            make([]float64, nVars),
		seen:                make([]bool, nVars),
		varIncr:             1.0,
		varDecay:            0.95,
		learntActivityInc:   1.0,
		learntActivityDecay: 0.999,
		restartInc:          2.0,
		lubyIndex:           1,
		ok:                  true,
		budgetConflicts:     -1,
		budgetProps:         -1,
		rng:                 rand.New(rand.NewSource(1)),
	}
	for v := range s.varReason {
		s.varReason[v] = noReason
	}
	return s
}

// NVars returns the number of variables the solver was constructed with.
func (s *Solver) NVars() int { return s.nVars }

// Value returns the current truth value of a literal.
func (s *Solver) Value(l cnf.Literal) cnf.LitValue {
	v := s.assigns[l.Var()]
	if !l.Sign() {
		return v.Negate()
	}
	return v
}

// ValueVar returns the current truth value of a variable.
func (s *Solver) ValueVar(v cnf.Variable) cnf.LitValue { return s.assigns[v] }

// Reason returns the clause that propagated v, or noReason if v was a
// decision or assumption.
func (s *Solver) Reason(v cnf.Variable) cnf.ClauseRef { return s.varReason[v] }

// Level returns the decision level at which v was assigned.
func (s *Solver) Level(v cnf.Variable) int { return int(s.varLevel[v]) }

// Trail returns the current trail (assigned literals in assignment order).
func (s *Solver) Trail() []cnf.Literal { return s.trail }

// CurrentLevel returns the current decision level (0 = root).
func (s *Solver) CurrentLevel() int { return len(s.trailLim) }

// Clause dereferences a ClauseRef.
func (s *Solver) Clause(r cnf.ClauseRef) *cnf.Clause { return s.clauses[r] }

// Activity returns v's current VSIDS activity, for heuristics that blend SAT
// core activity into their score (component F's VSIDS/VSADS methods).
func (s *Solver) Activity(v cnf.Variable) float64 { return s.activity[v] }

// SavedPolarity returns the phase last assigned to v (phase-saving), used
// by the POLARITY phase heuristic.
func (s *Solver) SavedPolarity(v cnf.Variable) bool { return s.polarity[v] }

// SetBudget installs a conflict and propagation budget (§5's "conflict
// budget and a propagation budget"); -1 means unlimited.
func (s *Solver) SetBudget(conflicts, props int64) {
	s.budgetConflicts = conflicts
	s.budgetProps = props
}

// SetAssumptions installs the assumption literals used by the next Solve.
func (s *Solver) SetAssumptions(lits []cnf.Literal) {
	s.assumptions = append(s.assumptions[:0], lits...)
}

// NewDecisionLevel opens a new decision level on the trail.
func (s *Solver) NewDecisionLevel() {
	s.trailLim = append(s.trailLim, int32(len(s.trail)))
}

// CancelUntil unwinds the trail back to the given decision level,
// un-assigning every variable assigned above it and saving each one's
// last value as its phase.
func (s *Solver) CancelUntil(level int) {
	if s.CurrentLevel() <= level {
		return
	}
	for i := len(s.trail) - 1; i >= int(s.trailLim[level]); i-- {
		l := s.trail[i]
		v := l.Var()
		s.polarity[v] = l.Sign()
		s.assigns[v] = cnf.Unassigned
		s.varReason[v] = noReason
	}
	s.qHead = int(s.trailLim[level])
	s.trail = s.trail[:s.trailLim[level]]
	s.trailLim = s.trailLim[:level]
}

// Enqueue assigns l true with the given reason (noReason for a decision or
// assumption), failing if l is already assigned to the opposite value.
func (s *Solver) Enqueue(l cnf.Literal, reason cnf.ClauseRef) bool {
	cur := s.Value(l)
	if cur == cnf.True {
		return true
	}
	if cur == cnf.False {
		return false
	}
	v := l.Var()
	if l.Sign() {
		s.assigns[v] = cnf.True
	} else {
		s.assigns[v] = cnf.False
	}
	s.varLevel[v] = int32(s.CurrentLevel())
	s.varReason[v] = reason
	s.trail = append(s.trail, l)
	return true
}

// bumpVarActivity applies VSIDS bumping with exponential rescaling once
// activity exceeds a threshold, per §4.1.
func (s *Solver) bumpVarActivity(v cnf.Variable) {
	s.activity[v] += s.varIncr
	if s.activity[v] > 1e100 {
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varIncr *= 1e-100
	}
}

func (s *Solver) decayVarActivity() { s.varIncr /= s.varDecay }

func (s *Solver) bumpClauseActivity(c *cnf.Clause) {
	c.Activity += s.learntActivityInc
	if c.Activity > 1e20 {
		for _, cl := range s.clauses {
			if cl.Learnt {
				cl.Activity *= 1e-20
			}
		}
		s.learntActivityInc *= 1e-20
	}
}

func (s *Solver) decayClauseActivity() { s.learntActivityInc /= s.learntActivityDecay }

// pickBranchVar selects the unassigned variable of maximum activity,
// falling back to its saved polarity (phase-saving), for the solver's own
// internal decisions (distinct from the compiler's heuristics in component
// F, which pick which variable to expose as a Decision node).
func (s *Solver) pickBranchVar() (cnf.Variable, bool) {
	best := cnf.Variable(-1)
	bestAct := math.Inf(-1)
	for v := 0; v < s.nVars; v++ {
		if s.assigns[v] != cnf.Unassigned {
			continue
		}
		if s.activity[v] > bestAct {
			bestAct = s.activity[v]
			best = cnf.Variable(v)
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
