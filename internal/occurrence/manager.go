// Package occurrence implements the occurrence manager (component C): a
// dynamic per-literal clause index under an evolving partial assignment,
// plus connected-component discovery over the primal graph of the
// not-yet-satisfied clauses, per §4.2.
package occurrence

import "github.com/gitrdm/d4go/internal/cnf"

// Component is a maximal connected set of unassigned variables, together
// with the not-yet-satisfied clause indices discovered while walking it —
// bundled here so the driver can hand exactly the right clause set to the
// bucket builder (component D) without a second scan.
type Component struct {
	Vars    []cnf.Variable
	Clauses []int
}

// Manager tracks, for every literal, the list of currently-unsatisfied
// clause indices it occurs in (§3's occurrence-index invariant), and
// exposes scoped "current clause set" views via UpdateCurrentClauseSet /
// PopPreviousClauseSet that must nest strictly with PreUpdate/PostUpdate
// (§5's ordering guarantee).
type Manager struct {
	clauses   []*cnf.Clause
	occ       [][]int // literal index -> clause indices, currently unsatisfied
	satisfied []bool

	undoStack [][]int  // per PreUpdate call: clauses it newly satisfied
	viewStack [][]int  // scoped "current clause set" views
}

// New builds an occurrence manager over the given clause set (typically a
// Formula's original clauses — the CDCL core's learnt clauses are not part
// of the residual formula the cache keys on).
func New(clauses []*cnf.Clause, numVars int) *Manager {
	m := &Manager{
		clauses:   clauses,
		occ:       make([][]int, numVars*2),
		satisfied: make([]bool, len(clauses)),
	}
	for ci, c := range clauses {
		for _, l := range c.Lits {
			m.occ[l.Index()] = append(m.occ[l.Index()], ci)
		}
	}
	return m
}

// PreUpdate logically assigns every literal in lits to true: it marks each
// not-yet-satisfied clause containing one of them as satisfied and removes
// it from the occurrence lists of all of its literals. Must be matched by
// exactly one PostUpdate(lits) before control leaves the enclosing frame.
func (m *Manager) PreUpdate(lits []cnf.Literal) {
	var newlySatisfied []int
	for _, l := range lits {
		for _, ci := range m.occ[l.Index()] {
			if !m.satisfied[ci] {
				m.satisfied[ci] = true
				newlySatisfied = append(newlySatisfied, ci)
			}
		}
	}
	for _, ci := range newlySatisfied {
		for _, l2 := range m.clauses[ci].Lits {
			m.removeOcc(l2, ci)
		}
	}
	m.undoStack = append(m.undoStack, newlySatisfied)
}

// PostUpdate inverts the most recent matching PreUpdate call.
func (m *Manager) PostUpdate(lits []cnf.Literal) {
	n := len(m.undoStack) - 1
	if n < 0 {
		return // misuse guard: unmatched PostUpdate
	}
	newlySatisfied := m.undoStack[n]
	m.undoStack = m.undoStack[:n]
	for _, ci := range newlySatisfied {
		m.satisfied[ci] = false
		for _, l2 := range m.clauses[ci].Lits {
			m.occ[l2.Index()] = append(m.occ[l2.Index()], ci)
		}
	}
}

func (m *Manager) removeOcc(l cnf.Literal, ci int) {
	list := m.occ[l.Index()]
	for i, x := range list {
		if x == ci {
			list[i] = list[len(list)-1]
			m.occ[l.Index()] = list[:len(list)-1]
			return
		}
	}
}

// ComputeComponents explores the primal graph restricted to vars and the
// not-yet-satisfied clauses, returning components in discovery order with
// variables in discovery order inside each, plus the free variables: those
// with no remaining incident clause, including singleton components with no
// remaining clause (§4.2).
func (m *Manager) ComputeComponents(vars []cnf.Variable) (components []Component, free []cnf.Variable) {
	inSet := make(map[cnf.Variable]bool, len(vars))
	for _, v := range vars {
		inSet[v] = true
	}
	visited := make(map[cnf.Variable]bool, len(vars))

	for _, start := range vars {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue := []cnf.Variable{start}
		var compVars []cnf.Variable
		clauseSeen := make(map[int]bool)
		var compClauses []int

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			compVars = append(compVars, v)

			for _, lit := range [2]cnf.Literal{cnf.MkLit(v, true), cnf.MkLit(v, false)} {
				for _, ci := range m.occ[lit.Index()] {
					if !clauseSeen[ci] {
						clauseSeen[ci] = true
						compClauses = append(compClauses, ci)
					}
					for _, l2 := range m.clauses[ci].Lits {
						nv := l2.Var()
						if inSet[nv] && !visited[nv] {
							visited[nv] = true
							queue = append(queue, nv)
						}
					}
				}
			}
		}

		if len(compVars) == 1 && len(compClauses) == 0 {
			free = append(free, compVars[0])
			continue
		}
		components = append(components, Component{Vars: compVars, Clauses: compClauses})
	}
	return components, free
}

// UpdateCurrentClauseSet pushes a scoped view restricting the "current"
// clause set to a single component's clauses, mirroring a d4-style nested
// recursion into one component at a time.
func (m *Manager) UpdateCurrentClauseSet(comp Component) {
	m.viewStack = append(m.viewStack, comp.Clauses)
}

// PopPreviousClauseSet restores the enclosing scope. Must be called exactly
// once per matching UpdateCurrentClauseSet call (§5).
func (m *Manager) PopPreviousClauseSet() {
	if len(m.viewStack) == 0 {
		return
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

// CurrentClauses returns the clause indices visible in the innermost scoped
// view, or every not-yet-satisfied clause if no view is active.
func (m *Manager) CurrentClauses() []int {
	if len(m.viewStack) > 0 {
		return m.viewStack[len(m.viewStack)-1]
	}
	all := make([]int, 0, len(m.clauses))
	for ci, sat := range m.satisfied {
		if !sat {
			all = append(all, ci)
		}
	}
	return all
}

// Clause dereferences a clause index.
func (m *Manager) Clause(ci int) *cnf.Clause { return m.clauses[ci] }
