package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/compiler"
	"github.com/gitrdm/d4go/internal/ddnnf"
	"github.com/gitrdm/d4go/internal/num"
	"github.com/gitrdm/d4go/internal/occurrence"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

func TestCompileDisjunctionProducesDecisionUnderRoot(t *testing.T) {
	f := cnf.NewFormula(2)
	f.AddClause(lit(0, true), lit(1, true))

	s := cdcl.New(2)
	require.True(t, s.AddClause(lit(0, true), lit(1, true)))
	mgr := occurrence.New(f.Clauses, 2)

	d := compiler.NewDriver(s, mgr, compiler.DefaultOptions())
	root, err := d.Compile([]cnf.Variable{0, 1}, nil)
	require.NoError(t, err)

	g := d.Graph()
	require.Equal(t, ddnnf.KindRoot, g.Node(root).Kind)
	children := g.Node(root).Children
	require.Len(t, children, 1)
	require.Equal(t, ddnnf.KindDecision, g.Node(children[0]).Kind)

	ctx := ddnnf.NewContext(g, f)
	require.True(t, ctx.Count(root).Equal(num.FromInt64(3)))
}

func TestCompileRootUnsatProducesFalse(t *testing.T) {
	f := cnf.NewFormula(1)
	s := cdcl.New(1)
	require.True(t, s.AddClause(lit(0, true)))
	require.False(t, s.AddClause(lit(0, false)))
	mgr := occurrence.New(f.Clauses, 1)

	d := compiler.NewDriver(s, mgr, compiler.DefaultOptions())
	root, err := d.Compile([]cnf.Variable{0}, nil)
	require.NoError(t, err)

	g := d.Graph()
	require.Equal(t, ddnnf.KindRoot, g.Node(root).Kind)
	children := g.Node(root).Children
	require.Len(t, children, 1)
	require.Equal(t, ddnnf.KindFalse, g.Node(children[0]).Kind)
}
