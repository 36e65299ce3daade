package cdcl

import "github.com/gitrdm/d4go/internal/cnf"

// Propagate drains the BCP queue using two-watched-literal propagation with
// the blocker optimization of §4.1: each watcher carries a second literal
// whose true value lets propagation skip inspecting the clause entirely.
// It returns the falsified clause on conflict.
func (s *Solver) Propagate() (conflict cnf.ClauseRef, hasConflict bool) {
	for s.qHead < len(s.trail) {
		p := s.trail[s.qHead]
		s.qHead++
		s.propagations++

		ws := s.watches[p.Index()]
		keep := ws[:0]
		for i := 0; i < len(ws); i++ {
			w := ws[i]
			if s.Value(w.blocker) == cnf.True {
				keep = append(keep, w)
				continue
			}
			c := s.clauses[w.clause]
			// Ensure the falsified watched literal is at index 1 so
			// lits[0] is the candidate for the other watch.
			if c.Lits[0].Neg() == p {
				c.Lits[0], c.Lits[1] = c.Lits[1], c.Lits[0]
			}
			first := c.Lits[0]
			if first != w.blocker && s.Value(first) == cnf.True {
				keep = append(keep, watcher{clause: w.clause, blocker: first})
				continue
			}
			foundNew := false
			for k := 2; k < len(c.Lits); k++ {
				if s.Value(c.Lits[k]) != cnf.False {
					c.Lits[1], c.Lits[k] = c.Lits[k], c.Lits[1]
					s.watches[c.Lits[1].Neg().Index()] = append(s.watches[c.Lits[1].Neg().Index()], watcher{clause: w.clause, blocker: first})
					foundNew = true
					break
				}
			}
			if foundNew {
				continue
			}
			keep = append(keep, watcher{clause: w.clause, blocker: first})
			if s.Value(first) == cnf.False {
				// Conflict: restore the remaining, not-yet-inspected
				// watchers so the watch-list invariant holds if the
				// caller backtracks and re-propagates.
				s.watches[p.Index()] = append(keep, ws[i+1:]...)
				s.qHead = len(s.trail)
				return w.clause, true
			}
			if !s.Enqueue(first, w.clause) {
				s.watches[p.Index()] = append(keep, ws[i+1:]...)
				s.qHead = len(s.trail)
				return w.clause, true
			}
		}
		s.watches[p.Index()] = keep
	}
	return 0, false
}
