package heuristics

import (
	"sort"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// PartitionerKind names a selectable priority-construction collaborator
// (§6's -pv flag): NO disables it, CB partitions the primal graph, VB the
// dual (variable-clause bipartite) graph.
type PartitionerKind int

const (
	PartitionerNone PartitionerKind = iota
	PartitionerCB
	PartitionerVB
)

// ParsePartitionerKind maps a -pv flag value to a PartitionerKind.
func ParsePartitionerKind(name string) (PartitionerKind, bool) {
	switch name {
	case "NO":
		return PartitionerNone, true
	case "CB":
		return PartitionerCB, true
	case "VB":
		return PartitionerVB, true
	default:
		return 0, false
	}
}

// Partitioner computes a cut-set over a component's graph, used as a
// priority list of variables to decide on first (§4.5's "pluggable
// collaborator").
type Partitioner interface {
	CutSet(comp occurrence.Component, mgr *occurrence.Manager) []cnf.Variable
}

// NewPartitioner builds the Partitioner named by kind, or nil for
// PartitionerNone.
func NewPartitioner(kind PartitionerKind, reducePrimalGraph, literalEquivalence bool) Partitioner {
	switch kind {
	case PartitionerCB:
		return &primalGraphPartitioner{reduce: reducePrimalGraph, literalEquiv: literalEquivalence}
	case PartitionerVB:
		return &dualGraphPartitioner{reduce: reducePrimalGraph, literalEquiv: literalEquivalence}
	default:
		return nil
	}
}

// primalGraphPartitioner approximates a balanced graph bisection over the
// component's primal (variable-adjacency) graph: a greedy BFS-frontier cut,
// standing in for a call to an external hypergraph partitioner (§4.5).
type primalGraphPartitioner struct {
	reduce       bool
	literalEquiv bool
}

func (p *primalGraphPartitioner) CutSet(comp occurrence.Component, mgr *occurrence.Manager) []cnf.Variable {
	adj := buildPrimalAdjacency(comp, mgr, p.literalEquiv)
	return bfsFrontierCut(comp.Vars, adj)
}

// dualGraphPartitioner approximates a cut over the variable-clause
// bipartite (dual) graph: every component variable that occurs in more
// than one of the component's clauses is in the cut-set.
type dualGraphPartitioner struct {
	reduce       bool
	literalEquiv bool
}

func (p *dualGraphPartitioner) CutSet(comp occurrence.Component, mgr *occurrence.Manager) []cnf.Variable {
	clauseOfVar := make(map[cnf.Variable][]int)
	for _, ci := range comp.Clauses {
		for _, l := range mgr.Clause(ci).Lits {
			v := l.Var()
			clauseOfVar[v] = append(clauseOfVar[v], ci)
		}
	}
	// Variables touching more than one clause in the component sit on the
	// dual-graph boundary between clause groups.
	var cut []cnf.Variable
	for _, v := range comp.Vars {
		if len(clauseOfVar[v]) > 1 {
			cut = append(cut, v)
		}
	}
	sort.Slice(cut, func(i, j int) bool { return cut[i] < cut[j] })
	return cut
}

func buildPrimalAdjacency(comp occurrence.Component, mgr *occurrence.Manager, literalEquiv bool) map[cnf.Variable]map[cnf.Variable]bool {
	adj := make(map[cnf.Variable]map[cnf.Variable]bool, len(comp.Vars))
	for _, v := range comp.Vars {
		adj[v] = make(map[cnf.Variable]bool)
	}
	for _, ci := range comp.Clauses {
		lits := mgr.Clause(ci).Lits
		for i := range lits {
			for j := range lits {
				if i == j {
					continue
				}
				a, b := lits[i].Var(), lits[j].Var()
				adj[a][b] = true
			}
		}
	}
	_ = literalEquiv // literal-equivalence merging is a refinement not modeled here
	return adj
}

// bfsFrontierCut returns, sorted, the vars in the middle BFS layer
// (maxLayer/2) counted from the first variable — an approximate vertex
// separator.
func bfsFrontierCut(vars []cnf.Variable, adj map[cnf.Variable]map[cnf.Variable]bool) []cnf.Variable {
	if len(vars) == 0 {
		return nil
	}
	layer := make(map[cnf.Variable]int)
	queue := []cnf.Variable{vars[0]}
	layer[vars[0]] = 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for n := range adj[v] {
			if _, seen := layer[n]; !seen {
				layer[n] = layer[v] + 1
				queue = append(queue, n)
			}
		}
	}
	maxLayer := 0
	for _, l := range layer {
		if l > maxLayer {
			maxLayer = l
		}
	}
	mid := maxLayer / 2
	var cut []cnf.Variable
	for _, v := range vars {
		if layer[v] == mid {
			cut = append(cut, v)
		}
	}
	sort.Slice(cut, func(i, j int) bool { return cut[i] < cut[j] })
	return cut
}

// BuildPriority computes the within-component priority list of §4.6 step
// 4b: the intersection of a caller-supplied priority with the component's
// variables, extended by an optional partitioner's cut-set.
func BuildPriority(supplied []cnf.Variable, comp occurrence.Component, mgr *occurrence.Manager, partitioner Partitioner) []cnf.Variable {
	inComp := make(map[cnf.Variable]bool, len(comp.Vars))
	for _, v := range comp.Vars {
		inComp[v] = true
	}
	seen := make(map[cnf.Variable]bool)
	var out []cnf.Variable
	for _, v := range supplied {
		if inComp[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if partitioner != nil {
		for _, v := range partitioner.CutSet(comp, mgr) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}
