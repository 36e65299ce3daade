package ddnnf

import (
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/num"
)

// Count computes the weighted model count rooted at r, per §4.8:
//   - True -> 1, False -> 0
//   - decomposable AND -> product of children
//   - Decision -> sum of the two branches
//   - a branch's unit literals and free variables scale its child's count
//     by the product of their (projected) weights.
func (c *Context) Count(r Ref) num.Num {
	n := c.Graph.Node(r)
	switch n.Kind {
	case KindTrue:
		return c.branchWeight(n, num.One())
	case KindFalse:
		return num.Zero()
	case KindUnary:
		return c.branchWeight(n, c.Count(n.Child))
	case KindDecision:
		pos := c.Count(n.Pos)
		neg := c.Count(n.Neg)
		return c.branchWeight(n, pos.Add(neg))
	case KindAnd, KindRoot:
		total := num.One()
		for _, ch := range n.Children {
			total = total.Mul(c.Count(ch))
		}
		return c.branchWeight(n, total)
	default:
		return num.Zero()
	}
}

// branchWeight multiplies base by the product of projected unit-literal
// weights and projected free-variable (w(v,0)+w(v,1)) terms recorded on n
// (§4.8's final clause).
func (c *Context) branchWeight(n *Node, base num.Num) num.Num {
	result := base
	for _, l := range c.Graph.Units(n) {
		if !c.Projected(l.Var()) {
			continue
		}
		result = result.Mul(num.FromFloat64(c.Weight(l)))
	}
	for _, v := range c.Graph.Free(n) {
		if !c.Projected(v) {
			continue
		}
		pos := c.Weight(cnf.MkLit(v, true))
		neg := c.Weight(cnf.MkLit(v, false))
		result = result.Mul(num.FromFloat64(pos + neg))
	}
	return result
}
