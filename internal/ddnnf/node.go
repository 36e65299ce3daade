// Package ddnnf implements the d-DNNF graph (component G): node variants,
// the index-based arenas that back unit-literal and free-variable lists,
// and the weighted-model-counting semantics of §4.8, per §4.6 and §4.9.
package ddnnf

import "github.com/gitrdm/d4go/internal/cnf"

// Kind distinguishes the node variants of §4.6: True, False, Unary,
// Decision, And, Root, plus the supplemented SpecialForm leaf for
// recognized Krom/renamable-Horn components.
type Kind int8

const (
	KindTrue Kind = iota
	KindFalse
	KindUnary
	KindDecision
	KindAnd
	KindRoot
	KindSpecialForm
)

// Ref is an index into a Graph's node arena. Using indices rather than
// pointers means the arena can grow (via append) without invalidating
// previously issued references, per §9's guidance for the unit-literal and
// free-variable arenas.
type Ref int32

const NoRef Ref = -1

// Node is one node of the d-DNNF graph. Its fields are a union over the
// Kind variants; only the fields relevant to Kind are meaningful.
type Node struct {
	Kind Kind

	// Unary / Decision / And / Root: the branch's recorded unit literals
	// and free variables, stored as index ranges into the owning Graph's
	// arenas (§9) rather than per-node slices.
	UnitsStart, UnitsLen int32
	FreeStart, FreeLen   int32

	// Decision: the two children, one per assumed literal.
	Pos, Neg     Ref
	DecisionLit  cnf.Literal
	FromCachePos bool
	FromCacheNeg bool

	// And / Root: the children, in discovery order.
	Children []Ref

	// Unary: the single child whose units/free list this node wraps.
	Child Ref

	// SpecialForm: which structural recognizer matched, for diagnostic
	// reporting; its satisfiability has already been folded into Kind
	// (KindTrue/KindFalse) by the time the node is built.
	SpecialFormKind int8

	// Certified variant (§6): resolution-reason clause indices backing
	// this node's derivation. No code in the module sets this field, so the
	// certified writer emits an empty reason list for every node.
	ReasonIDs []int32
}

// IsLeaf reports whether the node has no children (True, False or
// SpecialForm folded to a leaf).
func (n *Node) IsLeaf() bool {
	return n.Kind == KindTrue || n.Kind == KindFalse
}
