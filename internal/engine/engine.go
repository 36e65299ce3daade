// Package engine implements the recursion shared by the compiler driver
// (component H) and the counter driver (component I), which §4.8 describes
// as "structurally identical" to §4.6 except for what each node means.
// The two drivers differ only in how they fold a frame's result — a
// ddnnf.Ref node handle for the compiler, a Num for the counter — which
// this package captures as the Composer[V] type parameter.
package engine

import (
	"github.com/pkg/errors"

	"github.com/gitrdm/d4go/internal/bucket"
	"github.com/gitrdm/d4go/internal/cache"
	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/heuristics"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// Composer folds one compilation frame's results into a value of the
// driver's result type V (§4.6 steps 5-6 and §4.8's numeric mapping).
type Composer[V any] interface {
	// True and False build the two leaves of §4.6 step 6's base cases.
	True() V
	False() V
	// And wraps sibling components discovered in one frame (§4.6 step 5).
	And(children []V) V
	// Decision wraps the two branches of compile_decision_node (§4.6).
	Decision(lit cnf.Literal, pos, neg V, fromCachePos, fromCacheNeg bool) V
	// Scale applies a branch's recorded unit literals and free variables
	// (§4.8's final clause; a no-op for the compiler, which just records
	// them on the node).
	Scale(v V, units []cnf.Literal, free []cnf.Variable) V
}

// Driver runs the recursion of §4.6 over a CDCL core and occurrence
// manager, consulting a component cache and the heuristics collaborators,
// producing values of type V via Composer.
type Driver[V any] struct {
	Solver      *cdcl.Solver
	Mgr         *occurrence.Manager
	Cache       *cache.Cache[V]
	CacheEnabled bool
	Scorer      *heuristics.Scorer
	Phase       *heuristics.PhaseSelector
	Partitioner heuristics.Partitioner
	Composer    Composer[V]

	assumeStack []cnf.Literal
	initialized bool
}

// init is called lazily on first Compile so callers don't have to remember
// to flip the solver into assumptions-only mode themselves.
func (d *Driver[V]) init() {
	if d.initialized {
		return
	}
	d.Solver.SetAssumptionsOnly(true)
	d.initialized = true
}

// ErrInterrupted is returned when the SAT core's conflict or propagation
// budget is exhausted (§5: "fatal to the current compilation").
var ErrInterrupted = errors.New("engine: solve interrupted: budget exceeded")

// Compile runs §4.6's top-level `compile` over vars, with priority as the
// caller-supplied priority list.
func (d *Driver[V]) Compile(vars []cnf.Variable, priority []cnf.Variable) (V, error) {
	d.init()
	var zero V
	// The trail left behind by a sibling branch (or by a deeper recursive
	// call that has since returned) is not the trail this frame's
	// assumeStack describes, so every Compile call rebuilds it from
	// scratch: unwind to the root and replay d.assumeStack in order. This
	// is what pickDecision's assumption-replay loop (solve.go) expects —
	// without it, a literal left assigned by a sibling branch makes the
	// next branch's own (complementary) assumption look like an immediate
	// conflict.
	d.Solver.CancelUntil(0)
	d.Solver.SetAssumptions(d.assumeStack)
	res, err := d.Solver.Solve()
	if err != nil {
		return zero, err
	}
	if res == cdcl.Interrupted {
		return zero, ErrInterrupted
	}
	if res == cdcl.Unsat {
		return d.Composer.False(), nil
	}

	units := d.unitsThisFrame(vars)
	remaining := d.unassigned(vars)
	d.Mgr.PreUpdate(units)
	comps, free := d.Mgr.ComputeComponents(remaining)

	var children []V
	for _, comp := range comps {
		d.Mgr.UpdateCurrentClauseSet(comp)
		v, err := d.compileComponent(comp, priority)
		d.Mgr.PopPreviousClauseSet()
		if err != nil {
			d.Mgr.PostUpdate(units)
			return zero, err
		}
		children = append(children, v)
	}
	d.Mgr.PostUpdate(units)

	var composed V
	switch {
	case len(children) == 0:
		composed = d.Composer.True()
	case len(children) == 1:
		composed = children[0]
	default:
		composed = d.Composer.And(children)
	}
	return d.Composer.Scale(composed, units, free), nil
}

// unassigned filters vars to those the SAT core has not (yet) assigned a
// value to, so ComputeComponents never reports a variable as "free" that
// was actually pinned down by this frame's unit propagation (it is
// already accounted for via units).
func (d *Driver[V]) unassigned(vars []cnf.Variable) []cnf.Variable {
	out := make([]cnf.Variable, 0, len(vars))
	for _, v := range vars {
		if d.Solver.ValueVar(v) == cnf.Unassigned {
			out = append(out, v)
		}
	}
	return out
}

// unitsThisFrame returns the literals on the trail assigned at the current
// decision level restricted to vars (§4.6 step 2's "unit literals derived
// on this level").
func (d *Driver[V]) unitsThisFrame(vars []cnf.Variable) []cnf.Literal {
	inSet := make(map[cnf.Variable]bool, len(vars))
	for _, v := range vars {
		inSet[v] = true
	}
	level := d.Solver.CurrentLevel()
	var units []cnf.Literal
	for _, l := range d.Solver.Trail() {
		if d.Solver.Level(l.Var()) == level && inSet[l.Var()] {
			units = append(units, l)
		}
	}
	return units
}

func (d *Driver[V]) compileComponent(comp occurrence.Component, priority []cnf.Variable) (V, error) {
	var zero V
	key := bucket.Build(comp, d.Mgr)

	if d.CacheEnabled {
		if v, ok := d.Cache.Lookup(key.Bytes); ok {
			return v, nil
		}
	}

	within := heuristics.BuildPriority(priority, comp, d.Mgr, d.Partitioner)
	v, err := d.compileDecisionNode(comp.Vars, within)
	if err != nil {
		return zero, err
	}
	if d.CacheEnabled {
		d.Cache.Insert(key.Bytes, v)
	}
	return v, nil
}

// compileDecisionNode implements §4.6's compile_decision_node.
func (d *Driver[V]) compileDecisionNode(vars, priority []cnf.Variable) (V, error) {
	var zero V
	v, ok := d.pickVariable(vars, priority)
	if !ok {
		return d.Composer.True(), nil
	}

	phasePositive := d.Phase.Positive(v)
	lit := cnf.MkLit(v, phasePositive)

	d.assumeStack = append(d.assumeStack, lit)
	pos, fromCachePos, err := d.recurseBranch(vars, priority)
	d.assumeStack = d.assumeStack[:len(d.assumeStack)-1]
	if err != nil {
		return zero, err
	}

	d.assumeStack = append(d.assumeStack, lit.Neg())
	neg, fromCacheNeg, err := d.recurseBranch(vars, priority)
	d.assumeStack = d.assumeStack[:len(d.assumeStack)-1]
	if err != nil {
		return zero, err
	}

	return d.Composer.Decision(lit, pos, neg, fromCachePos, fromCacheNeg), nil
}

// recurseBranch is a thin wrapper recording whether the component sub-calls
// inside this branch were all cache hits — an approximation of §4.6's
// per-branch from_cache bookkeeping, suitable for the certified
// serialization's 1|2 flag.
func (d *Driver[V]) recurseBranch(vars []cnf.Variable, priority []cnf.Variable) (V, bool, error) {
	hitsBefore, missesBefore := int64(0), int64(0)
	if d.CacheEnabled {
		hitsBefore, missesBefore = d.Cache.Stats()
	}
	v, err := d.Compile(vars, priority)
	if err != nil {
		var zero V
		return zero, false, err
	}
	fromCache := false
	if d.CacheEnabled {
		hitsAfter, missesAfter := d.Cache.Stats()
		fromCache = hitsAfter > hitsBefore && missesAfter == missesBefore
	}
	return v, fromCache, nil
}

// pickVariable selects the unassigned, projected variable of maximum score
// within priority if non-empty, else within vars (§4.5's "Variable
// selection").
func (d *Driver[V]) pickVariable(vars, priority []cnf.Variable) (cnf.Variable, bool) {
	candidates := vars
	if len(priority) > 0 {
		candidates = priority
	}
	best := cnf.Variable(-1)
	bestScore := -1.0
	found := false
	for _, v := range candidates {
		if d.Solver.ValueVar(v) != cnf.Unassigned {
			continue
		}
		score := d.Scorer.Score(v)
		if !found || score > bestScore {
			found = true
			bestScore = score
			best = v
		}
	}
	return best, found
}
