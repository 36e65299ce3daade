package cdcl

import "github.com/gitrdm/d4go/internal/cnf"

// AddClause normalizes, dedupes and tautology-checks lits (sharing
// cnf.NormalizeClause with the parser so both apply the identical rule),
// attaches the resulting clause, and immediately unit-propagates if it
// reduces to a unit. A tautological clause is a silent no-op, matching
// §4.1's add_clause contract.
func (s *Solver) AddClause(lits ...cnf.Literal) bool {
	if !s.ok {
		return false
	}
	norm, taut := cnf.NormalizeClause(lits)
	if taut {
		return true
	}
	if len(norm) == 0 {
		s.ok = false
		return false
	}
	ref := s.newClauseRef(norm, false)
	return s.attachClause(ref)
}

// addLearnt attaches a learnt clause produced by conflict analysis.
func (s *Solver) addLearnt(lits []cnf.Literal) cnf.ClauseRef {
	ref := s.newClauseRef(lits, true)
	s.attachClause(ref)
	return ref
}

func (s *Solver) newClauseRef(lits []cnf.Literal, learnt bool) cnf.ClauseRef {
	c := cnf.NewClause(lits...)
	c.Learnt = learnt
	s.clauses = append(s.clauses, c)
	return cnf.ClauseRef(len(s.clauses) - 1)
}

// attachClause installs watches (for width >= 2) or performs the immediate
// unit propagation / root-conflict detection (for width 0 or 1) described in
// §3's watch invariant.
func (s *Solver) attachClause(ref cnf.ClauseRef) bool {
	c := s.clauses[ref]
	switch len(c.Lits) {
	case 0:
		s.ok = false
		return false
	case 1:
		if !s.Enqueue(c.Lits[0], noReason) {
			s.ok = false
			return false
		}
		if conflict, hasConflict := s.Propagate(); hasConflict {
			_ = conflict
			s.ok = false
			return false
		}
		return true
	default:
		l0, l1 := c.Lits[0], c.Lits[1]
		s.watches[l0.Neg().Index()] = append(s.watches[l0.Neg().Index()], watcher{clause: ref, blocker: l1})
		s.watches[l1.Neg().Index()] = append(s.watches[l1.Neg().Index()], watcher{clause: ref, blocker: l0})
		return true
	}
}

// detachClause removes a clause's watches, used by Simplify to drop
// satisfied clauses at the root.
func (s *Solver) detachClause(ref cnf.ClauseRef) {
	c := s.clauses[ref]
	if len(c.Lits) < 2 {
		c.Attached = false
		return
	}
	l0, l1 := c.Lits[0], c.Lits[1]
	s.removeWatch(l0.Neg(), ref)
	s.removeWatch(l1.Neg(), ref)
	c.Attached = false
}

func (s *Solver) removeWatch(l cnf.Literal, ref cnf.ClauseRef) {
	ws := s.watches[l.Index()]
	for i, w := range ws {
		if w.clause == ref {
			s.watches[l.Index()] = append(ws[:i], ws[i+1:]...)
			return
		}
	}
}
