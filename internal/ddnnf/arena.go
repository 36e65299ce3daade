package ddnnf

import "github.com/gitrdm/d4go/internal/cnf"

// Graph owns the node table and the two arenas referenced by every node's
// Units/Free index ranges (§9): a single append-only []cnf.Literal for
// branch unit-literal lists, and a single append-only []cnf.Variable for
// branch free-variable lists. Consolidating these into one growing slice
// per kind avoids a per-node heap allocation for what is typically a very
// short list.
type Graph struct {
	nodes    []Node
	unitLits []cnf.Literal
	freeVars []cnf.Variable

	// stamp is a counter advanced by NextStamp and read by Stamp; no other
	// code in the module calls either, so it stays 0 during compilation.
	stamp int64
}

// NewGraph constructs an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Stamp returns the current compilation-run stamp.
func (g *Graph) Stamp() int64 { return g.stamp }

// NextStamp increments and returns a fresh stamp.
func (g *Graph) NextStamp() int64 {
	g.stamp++
	return g.stamp
}

// Node dereferences a Ref.
func (g *Graph) Node(r Ref) *Node { return &g.nodes[r] }

// NumNodes returns the number of nodes allocated so far.
func (g *Graph) NumNodes() int { return len(g.nodes) }

func (g *Graph) alloc(n Node) Ref {
	g.nodes = append(g.nodes, n)
	return Ref(len(g.nodes) - 1)
}

// NewLeaf allocates a True or False leaf.
func (g *Graph) NewLeaf(kind Kind) Ref {
	return g.alloc(Node{Kind: kind})
}

// pushUnits appends lits to the shared unit-literal arena and returns the
// (start, len) range a node should record.
func (g *Graph) pushUnits(lits []cnf.Literal) (int32, int32) {
	start := int32(len(g.unitLits))
	g.unitLits = append(g.unitLits, lits...)
	return start, int32(len(lits))
}

// pushFree appends vars to the shared free-variable arena.
func (g *Graph) pushFree(vars []cnf.Variable) (int32, int32) {
	start := int32(len(g.freeVars))
	g.freeVars = append(g.freeVars, vars...)
	return start, int32(len(vars))
}

// Units returns a node's recorded unit-literal list.
func (g *Graph) Units(n *Node) []cnf.Literal {
	return g.unitLits[n.UnitsStart : n.UnitsStart+n.UnitsLen]
}

// Free returns a node's recorded free-variable list.
func (g *Graph) Free(n *Node) []cnf.Variable {
	return g.freeVars[n.FreeStart : n.FreeStart+n.FreeLen]
}

// NewUnary wraps child, recording units/free derived on this level
// (§4.6 step 5's "wrap in a Unary node if units must be recorded").
func (g *Graph) NewUnary(child Ref, units []cnf.Literal, free []cnf.Variable) Ref {
	us, ul := g.pushUnits(units)
	fs, fl := g.pushFree(free)
	return g.alloc(Node{Kind: KindUnary, Child: child, UnitsStart: us, UnitsLen: ul, FreeStart: fs, FreeLen: fl})
}

// NewDecision allocates a Decision(pos, neg) node over the given literal.
func (g *Graph) NewDecision(lit cnf.Literal, pos, neg Ref, fromCachePos, fromCacheNeg bool, units []cnf.Literal, free []cnf.Variable) Ref {
	us, ul := g.pushUnits(units)
	fs, fl := g.pushFree(free)
	return g.alloc(Node{
		Kind: KindDecision, DecisionLit: lit, Pos: pos, Neg: neg,
		FromCachePos: fromCachePos, FromCacheNeg: fromCacheNeg,
		UnitsStart: us, UnitsLen: ul, FreeStart: fs, FreeLen: fl,
	})
}

// NewAnd allocates a decomposable AND node over children (§4.6 step 5:
// "wrap the children in an And node").
func (g *Graph) NewAnd(children []Ref, units []cnf.Literal, free []cnf.Variable) Ref {
	us, ul := g.pushUnits(units)
	fs, fl := g.pushFree(free)
	cs := append([]Ref(nil), children...)
	return g.alloc(Node{Kind: KindAnd, Children: cs, UnitsStart: us, UnitsLen: ul, FreeStart: fs, FreeLen: fl})
}

// NewRoot allocates the top-level Root node wrapping the whole graph.
func (g *Graph) NewRoot(child Ref, units []cnf.Literal, free []cnf.Variable) Ref {
	us, ul := g.pushUnits(units)
	fs, fl := g.pushFree(free)
	return g.alloc(Node{Kind: KindRoot, Children: []Ref{child}, UnitsStart: us, UnitsLen: ul, FreeStart: fs, FreeLen: fl})
}
