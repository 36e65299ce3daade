package ddnnf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/ddnnf"
	"github.com/gitrdm/d4go/internal/num"
)

func TestCountTrueLeafIsOne(t *testing.T) {
	g := ddnnf.NewGraph()
	f := cnf.NewFormula(1)
	ctx := ddnnf.NewContext(g, f)

	leaf := g.NewLeaf(ddnnf.KindTrue)
	require.True(t, ctx.Count(leaf).Equal(num.One()))
}

func TestCountFalseLeafIsZero(t *testing.T) {
	g := ddnnf.NewGraph()
	f := cnf.NewFormula(1)
	ctx := ddnnf.NewContext(g, f)

	leaf := g.NewLeaf(ddnnf.KindFalse)
	require.True(t, ctx.Count(leaf).IsZero())
}

func TestCountDecisionSumsBranches(t *testing.T) {
	g := ddnnf.NewGraph()
	f := cnf.NewFormula(2)
	ctx := ddnnf.NewContext(g, f)

	trueLeaf := g.NewLeaf(ddnnf.KindTrue)
	falseLeaf := g.NewLeaf(ddnnf.KindFalse)
	dec := g.NewDecision(cnf.MkLit(0, true), trueLeaf, falseLeaf, false, false, nil, nil)

	require.True(t, ctx.Count(dec).Equal(num.One()))
}

func TestCountAndMultipliesChildren(t *testing.T) {
	g := ddnnf.NewGraph()
	f := cnf.NewFormula(2)
	ctx := ddnnf.NewContext(g, f)

	t1 := g.NewLeaf(ddnnf.KindTrue)
	dec := g.NewDecision(cnf.MkLit(0, true), t1, t1, false, false, nil, nil) // 1+1=2
	and := g.NewAnd([]ddnnf.Ref{dec, dec}, nil, nil)                        // 2*2=4

	require.True(t, ctx.Count(and).Equal(num.FromInt64(4)))
}

func TestCountFreeVariableDoublesPerUnweightedVariable(t *testing.T) {
	g := ddnnf.NewGraph()
	f := cnf.NewFormula(1)
	ctx := ddnnf.NewContext(g, f)

	trueLeaf := g.NewLeaf(ddnnf.KindTrue)
	unary := g.NewUnary(trueLeaf, nil, []cnf.Variable{0})

	require.True(t, ctx.Count(unary).Equal(num.FromInt64(2)))
}

func TestCountUnprojectedFreeVariableIsIgnored(t *testing.T) {
	g := ddnnf.NewGraph()
	f := cnf.NewFormula(1)
	f.SetProjected(nil) // no variables projected: var 0 excluded
	ctx := ddnnf.NewContext(g, f)

	trueLeaf := g.NewLeaf(ddnnf.KindTrue)
	unary := g.NewUnary(trueLeaf, nil, []cnf.Variable{0})

	require.True(t, ctx.Count(unary).Equal(num.One()))
}
