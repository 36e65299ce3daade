// Package specialform detects two structural special cases of a
// component's clause set — Krom (binary) and renamable-Horn formulas —
// that admit a cheaper satisfiability test than general CDCL search.
// Grounded on the original implementation's DAG/KromFormula.hh (a
// two-literal-watch unit-propagation loop) and utils/RenamableHorn.hh (a
// stochastic local search over variable renamings), a feature present in
// the original engine that the distilled specification leaves as an
// acceleration opportunity rather than a required behavior.
package specialform

import (
	"math/rand"

	"github.com/gitrdm/d4go/internal/cnf"
)

// Kind distinguishes which special form (if any) a component's clause set
// was recognized as.
type Kind int

const (
	None Kind = iota
	Krom
	RenamableHorn
)

// DetectKrom reports whether every clause has at most two literals.
func DetectKrom(clauses []*cnf.Clause) bool {
	for _, c := range clauses {
		if len(c.Lits) > 2 {
			return false
		}
	}
	return true
}

// KromSAT decides satisfiability of a Krom (binary) clause set by the
// unit-propagation fixpoint of KromFormula.hh's isSAT: repeatedly derive a
// forced literal from any clause with one watched literal false and the
// other unassigned, until no clause forces anything or a contradiction
// (both literals of some clause false) is found.
func KromSAT(clauses []*cnf.Clause, numVars int) bool {
	assign := make([]cnf.LitValue, numVars)
	forced := func(l cnf.Literal) cnf.LitValue {
		v := assign[l.Var()]
		if v == cnf.Unassigned {
			return cnf.Unassigned
		}
		if !l.Sign() {
			return v.Negate()
		}
		return v
	}
	assignVal := func(l cnf.Literal) {
		if l.Sign() {
			assign[l.Var()] = cnf.True
		} else {
			assign[l.Var()] = cnf.False
		}
	}

	for {
		progressed := false
		for _, c := range clauses {
			if len(c.Lits) == 0 {
				return false
			}
			if len(c.Lits) == 1 {
				s := forced(c.Lits[0])
				if s == cnf.False {
					return false
				}
				if s == cnf.Unassigned {
					assignVal(c.Lits[0])
					progressed = true
				}
				continue
			}
			s1, s2 := forced(c.Lits[0]), forced(c.Lits[1])
			switch {
			case s1 == cnf.False && s2 == cnf.Unassigned:
				assignVal(c.Lits[1])
				progressed = true
			case s2 == cnf.False && s1 == cnf.Unassigned:
				assignVal(c.Lits[0])
				progressed = true
			case s1 == cnf.False && s2 == cnf.False:
				return false
			}
		}
		if !progressed {
			return true
		}
	}
}

// RenamableHornSearch looks for a per-variable renaming (flip
// interpretation) under which every clause has at most one positive
// literal, using random-restart hill climbing: on each run it seeds a
// random renaming, then repeatedly flips the variable that most reduces
// the count of non-Horn clauses, for up to nbFlips steps. It returns the
// best renaming found and its residual non-Horn clause count (zero means
// a true renamable-Horn certificate was found), mirroring
// utils/RenamableHorn.hh's run().
func RenamableHornSearch(clauses []*cnf.Clause, numVars, nbRuns, nbFlips int, rng *rand.Rand) (renamed []bool, notHornCount int) {
	bestNotHorn := -1
	var best []bool

	countNotHorn := func(renamed []bool) int {
		count := 0
		for _, c := range clauses {
			positives := 0
			for _, l := range c.Lits {
				if isPositiveUnderRenaming(l, renamed) {
					positives++
				}
			}
			if positives > 1 {
				count++
			}
		}
		return count
	}

	for run := 0; run < nbRuns; run++ {
		cur := make([]bool, numVars)
		for v := range cur {
			cur[v] = rng.Intn(2) == 1
		}
		curCount := countNotHorn(cur)

		for flip := 0; flip < nbFlips && curCount > 0; flip++ {
			bestVar, bestDelta := -1, 0
			for v := 0; v < numVars; v++ {
				cur[v] = !cur[v]
				newCount := countNotHorn(cur)
				cur[v] = !cur[v]
				delta := curCount - newCount
				if delta > bestDelta {
					bestDelta = delta
					bestVar = v
				}
			}
			if bestVar == -1 {
				break
			}
			cur[bestVar] = !cur[bestVar]
			curCount -= bestDelta
		}

		if bestNotHorn == -1 || curCount < bestNotHorn {
			bestNotHorn = curCount
			best = append([]bool(nil), cur...)
		}
		if bestNotHorn == 0 {
			break
		}
	}
	return best, bestNotHorn
}

func isPositiveUnderRenaming(l cnf.Literal, renamed []bool) bool {
	return l.Sign() != renamed[l.Var()]
}

// Classify reports which special form, if any, a component's clause set
// matches, trying the cheap Krom check before the more expensive
// renamable-Horn search.
func Classify(clauses []*cnf.Clause, numVars int) Kind {
	if DetectKrom(clauses) {
		return Krom
	}
	_, notHorn := RenamableHornSearch(clauses, numVars, 8, 32, rand.New(rand.NewSource(1)))
	if notHorn == 0 {
		return RenamableHorn
	}
	return None
}
