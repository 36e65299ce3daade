// Package counter implements the counter driver (component I): it runs
// the shared engine recursion with a Composer that folds results directly
// into a weighted model count, per §4.8.
package counter

import (
	"github.com/gitrdm/d4go/internal/cache"
	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/engine"
	"github.com/gitrdm/d4go/internal/heuristics"
	"github.com/gitrdm/d4go/internal/num"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// numComposer implements engine.Composer[num.Num] per §4.8: True -> 1,
// False -> 0, And -> product, Decision -> sum, Scale -> weight product
// over projected units and free variables.
type numComposer struct {
	formula   *cnf.Formula
	precision int
}

func (c *numComposer) True() num.Num  { return num.One() }
func (c *numComposer) False() num.Num { return num.Zero() }

func (c *numComposer) And(children []num.Num) num.Num {
	total := num.One()
	for _, ch := range children {
		total = total.Mul(ch)
	}
	return total
}

func (c *numComposer) Decision(_ cnf.Literal, pos, neg num.Num, _, _ bool) num.Num {
	return pos.Add(neg)
}

func (c *numComposer) Scale(v num.Num, units []cnf.Literal, free []cnf.Variable) num.Num {
	result := v
	for _, l := range units {
		if !c.formula.IsProjected(l.Var()) {
			continue
		}
		result = result.Mul(num.FromFloat64(c.formula.WeightOf(l)))
	}
	for _, fv := range free {
		if !c.formula.IsProjected(fv) {
			continue
		}
		pos := c.formula.WeightOf(cnf.MkLit(fv, true))
		neg := c.formula.WeightOf(cnf.MkLit(fv, false))
		result = result.Mul(num.FromFloat64(pos + neg))
	}
	if c.precision > 0 {
		result = result.SetPrecision(c.precision)
	}
	return result
}

// Driver wraps an engine.Driver[num.Num] configured over a Formula.
type Driver struct {
	engine *engine.Driver[num.Num]
}

// Options mirrors compiler.Options for the counter's CLI surface.
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
	Precision       int
}

// DefaultOptions mirrors compiler.DefaultOptions.
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

// NewDriver builds a counter Driver over solver/mgr/formula for opts.
func NewDriver(solver *cdcl.Solver, mgr *occurrence.Manager, formula *cnf.Formula, opts Options) *Driver {
	scorer := heuristics.NewScorer(opts.Scoring, mgr, solver)
	phase := heuristics.NewPhaseSelector(opts.Phase, solver, mgr, opts.ReversePolarity)
	partitioner := heuristics.NewPartitioner(opts.Partitioner, false, false)

	e := &engine.Driver[num.Num]{
		Solver:       solver,
		Mgr:          mgr,
		Cache:        cache.New[num.Num](opts.CacheBuckets, opts.ReduceLog2, opts.HitStrategy, opts.Aging),
		CacheEnabled: opts.CacheEnabled,
		Scorer:       scorer,
		Phase:        phase,
		Partitioner:  partitioner,
		Composer:     &numComposer{formula: formula, precision: opts.Precision},
	}
	return &Driver{engine: e}
}

// Count computes the weighted model count over vars.
func (d *Driver) Count(vars []cnf.Variable, priority []cnf.Variable) (num.Num, error) {
	return d.engine.Compile(vars, priority)
}
