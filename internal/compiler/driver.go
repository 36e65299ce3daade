// Package compiler implements the compiler driver (component H): it runs
// the shared engine recursion with a Composer that builds d-DNNF graph
// nodes, per §4.6.
package compiler

import (
	"github.com/gitrdm/d4go/internal/bucket"
	"github.com/gitrdm/d4go/internal/cache"
	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/ddnnf"
	"github.com/gitrdm/d4go/internal/engine"
	"github.com/gitrdm/d4go/internal/heuristics"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// graphComposer implements engine.Composer[ddnnf.Ref] by allocating nodes
// in a *ddnnf.Graph.
type graphComposer struct {
	graph *ddnnf.Graph
}

func (c *graphComposer) True() ddnnf.Ref  { return c.graph.NewLeaf(ddnnf.KindTrue) }
func (c *graphComposer) False() ddnnf.Ref { return c.graph.NewLeaf(ddnnf.KindFalse) }

func (c *graphComposer) And(children []ddnnf.Ref) ddnnf.Ref {
	return c.graph.NewAnd(children, nil, nil)
}

func (c *graphComposer) Decision(lit cnf.Literal, pos, neg ddnnf.Ref, fromCachePos, fromCacheNeg bool) ddnnf.Ref {
	return c.graph.NewDecision(lit, pos, neg, fromCachePos, fromCacheNeg, nil, nil)
}

func (c *graphComposer) Scale(v ddnnf.Ref, units []cnf.Literal, free []cnf.Variable) ddnnf.Ref {
	if len(units) == 0 && len(free) == 0 {
		return v
	}
	return c.graph.NewUnary(v, units, free)
}

// Driver wraps an engine.Driver[ddnnf.Ref] with the construction needed to
// run it over a parsed Formula.
type Driver struct {
	graph  *ddnnf.Graph
	engine *engine.Driver[ddnnf.Ref]
}

// Options configures the compiler driver's heuristic and caching choices
// (the §6 CLI surface's -vh/-ph/-pv/-rp/-optCache family).
type Options struct {
	Scoring         heuristics.ScoringMethod
	Phase           heuristics.PhaseMethod
	Partitioner     heuristics.PartitionerKind
	ReversePolarity bool
	CacheEnabled    bool
	CacheBuckets    int
	ReduceLog2      int
	HitStrategy     cache.HitStrategy
	Aging           cache.AgingMode
}

// DefaultOptions mirrors d4's own defaults (VSADS scoring, saved-polarity
// phase, no external partitioner, classic caching).
func DefaultOptions() Options {
	return Options{
		Scoring:      heuristics.VSADS,
		Phase:        heuristics.PhasePolarity,
		Partitioner:  heuristics.PartitionerNone,
		CacheEnabled: true,
		CacheBuckets: 1 << 16,
		ReduceLog2:   20,
		HitStrategy:  cache.IncrementByOne,
		Aging:        cache.Subtract,
	}
}

// NewDriver builds a compiler Driver over solver/mgr for the given options.
func NewDriver(solver *cdcl.Solver, mgr *occurrence.Manager, opts Options) *Driver {
	graph := ddnnf.NewGraph()
	scorer := heuristics.NewScorer(opts.Scoring, mgr, solver)
	phase := heuristics.NewPhaseSelector(opts.Phase, solver, mgr, opts.ReversePolarity)
	partitioner := heuristics.NewPartitioner(opts.Partitioner, false, false)

	e := &engine.Driver[ddnnf.Ref]{
		Solver:       solver,
		Mgr:          mgr,
		Cache:        cache.New[ddnnf.Ref](opts.CacheBuckets, opts.ReduceLog2, opts.HitStrategy, opts.Aging),
		CacheEnabled: opts.CacheEnabled,
		Scorer:       scorer,
		Phase:        phase,
		Partitioner:  partitioner,
		Composer:     &graphComposer{graph: graph},
	}
	return &Driver{graph: graph, engine: e}
}

// Graph returns the d-DNNF graph under construction.
func (d *Driver) Graph() *ddnnf.Graph { return d.graph }

// Compile compiles the formula's variables into a d-DNNF rooted Ref,
// wrapping the result in a Root node per §4.6/§4.9.
func (d *Driver) Compile(vars []cnf.Variable, priority []cnf.Variable) (ddnnf.Ref, error) {
	child, err := d.engine.Compile(vars, priority)
	if err != nil {
		return ddnnf.NoRef, err
	}
	return d.graph.NewRoot(child, nil, nil), nil
}
