package ddnnf

import "github.com/gitrdm/d4go/internal/cnf"

// Context bundles a Graph with the weight and projection information
// needed to give its nodes numeric meaning (§4.8), consolidating what
// would otherwise be parameters threaded through every recursive call.
type Context struct {
	Graph     *Graph
	Formula   *cnf.Formula
	Precision int // -precision bits, 0 = default
}

// NewContext builds a Context over an existing graph and formula.
func NewContext(g *Graph, f *cnf.Formula) *Context {
	return &Context{Graph: g, Formula: f}
}

// Projected reports whether v counts toward the weighted model count
// (§4.8's "v projected" qualifier on unit literals and free variables).
func (c *Context) Projected(v cnf.Variable) bool {
	return c.Formula.IsProjected(v)
}

// Weight returns the weight of a literal, defaulting to 1.0 (§4.8).
func (c *Context) Weight(l cnf.Literal) float64 {
	return c.Formula.WeightOf(l)
}
