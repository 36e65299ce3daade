package cdcl

import "github.com/gitrdm/d4go/internal/cnf"

const sentinel = cnf.Literal(-1)

// analyze performs first-UIP conflict analysis (§4.1): it walks the
// implication graph backward from the conflicting clause along the trail,
// resolving out every literal of the current decision level except the
// single "unique implication point", and returns the learnt clause (UIP
// literal first) together with the level to backtrack to.
func (s *Solver) analyze(confl cnf.ClauseRef) ([]cnf.Literal, int) {
	for i := range s.seen {
		s.seen[i] = false
	}
	outLearnt := []cnf.Literal{0}
	pathC := 0
	p := sentinel
	idx := len(s.trail) - 1
	reasonRef := confl

	for {
		c := s.clauses[reasonRef]
		for _, q := range c.Lits {
			if q == p {
				continue
			}
			v := q.Var()
			if s.seen[v] || s.varLevel[v] == 0 {
				continue
			}
			s.seen[v] = true
			s.bumpVarActivity(v)
			if int(s.varLevel[v]) >= s.CurrentLevel() {
				pathC++
			} else {
				outLearnt = append(outLearnt, q)
			}
		}
		for !s.seen[s.trail[idx].Var()] {
			idx--
		}
		p = s.trail[idx]
		pv := p.Var()
		reasonRef = s.varReason[pv]
		s.seen[pv] = false
		idx--
		pathC--
		if pathC == 0 {
			break
		}
	}
	outLearnt[0] = p.Neg()

	s.minimize(&outLearnt)

	backtrack := 0
	if len(outLearnt) > 1 {
		maxI := 1
		for i := 2; i < len(outLearnt); i++ {
			if s.varLevel[outLearnt[i].Var()] > s.varLevel[outLearnt[maxI].Var()] {
				maxI = i
			}
		}
		outLearnt[1], outLearnt[maxI] = outLearnt[maxI], outLearnt[1]
		backtrack = int(s.varLevel[outLearnt[1].Var()])
	}
	s.decayVarActivity()
	s.decayClauseActivity()
	return outLearnt, backtrack
}

// abstractLevel returns a single-bit abstraction of v's decision level
// (level mod 32), used by litRedundant to reject a reason literal outright
// when its level could not possibly have been resolved away by anything
// already in the learnt clause, without paying for the recursive walk.
func (s *Solver) abstractLevel(v cnf.Variable) uint32 {
	return 1 << (uint32(s.varLevel[v]) & 31)
}

// minimize applies §4.1's recursive self-subsumption minimization: a learnt
// literal is dropped when every literal reachable from its reason clause —
// transitively, through the reasons of those literals in turn — is either
// already in the learnt clause or fixed at level 0. litRedundant carries out
// the recursive check (as an explicit stack, not a recursive call, since the
// transitive closure can run deep on long implication chains).
func (s *Solver) minimize(learnt *[]cnf.Literal) {
	abstractLevels := uint32(0)
	for _, l := range (*learnt)[1:] {
		abstractLevels |= s.abstractLevel(l.Var())
	}

	out := (*learnt)[:1]
	for _, l := range (*learnt)[1:] {
		if s.varReason[l.Var()] == noReason || !s.litRedundant(l, abstractLevels) {
			out = append(out, l)
		}
	}
	*learnt = out

	for _, l := range s.analyzeToClear {
		s.seen[l.Var()] = false
	}
	s.analyzeToClear = s.analyzeToClear[:0]
}

// litRedundant reports whether p is redundant in the learnt clause: every
// literal in p's reason clause (other than p itself) is already seen (a
// member of the learnt clause) or, recursively, itself redundant by the same
// test. A literal whose level bit is absent from abstractLevels cannot have
// been implied by anything already in the clause, so its chain is rejected
// without a reason-clause lookup. On failure, every seen mark this call made
// is rolled back so a later literal's check starts clean.
func (s *Solver) litRedundant(p cnf.Literal, abstractLevels uint32) bool {
	top := len(s.analyzeToClear)
	s.analyzeStack = append(s.analyzeStack[:0], p)
	for len(s.analyzeStack) > 0 {
		ref := s.varReason[s.analyzeStack[len(s.analyzeStack)-1].Var()]
		s.analyzeStack = s.analyzeStack[:len(s.analyzeStack)-1]
		c := s.clauses[ref]

		// c.Lits[0] is always the literal that propagation asserted (the
		// watch-swap in propagate.go keeps it there), i.e. the popped stack
		// entry itself — skip it, only its antecedents matter here.
		for _, q := range c.Lits[1:] {
			v := q.Var()
			if s.seen[v] || s.varLevel[v] == 0 {
				continue
			}
			if s.varReason[v] != noReason && (s.abstractLevel(v)&abstractLevels) != 0 {
				s.seen[v] = true
				s.analyzeStack = append(s.analyzeStack, q)
				s.analyzeToClear = append(s.analyzeToClear, q)
				continue
			}
			for _, cl := range s.analyzeToClear[top:] {
				s.seen[cl.Var()] = false
			}
			s.analyzeToClear = s.analyzeToClear[:top]
			return false
		}
	}
	return true
}
