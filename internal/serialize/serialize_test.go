package serialize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/compiler"
	"github.com/gitrdm/d4go/internal/ddnnf"
	"github.com/gitrdm/d4go/internal/num"
	"github.com/gitrdm/d4go/internal/occurrence"
	"github.com/gitrdm/d4go/internal/serialize"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

func compileDisjunction(t *testing.T) (*ddnnf.Graph, ddnnf.Ref, *cnf.Formula) {
	t.Helper()
	f := cnf.NewFormula(2)
	f.AddClause(lit(0, true), lit(1, true))

	s := cdcl.New(2)
	require.True(t, s.AddClause(lit(0, true), lit(1, true)))
	mgr := occurrence.New(f.Clauses, 2)

	d := compiler.NewDriver(s, mgr, compiler.DefaultOptions())
	root, err := d.Compile([]cnf.Variable{0, 1}, nil)
	require.NoError(t, err)
	return d.Graph(), root, f
}

func TestWriteThenReadRoundTripsCount(t *testing.T) {
	g, root, f := compileDisjunction(t)

	var buf strings.Builder
	require.NoError(t, serialize.Write(&buf, g, root, serialize.Options{}))

	g2, root2, err := serialize.Read(strings.NewReader(buf.String()))
	require.NoError(t, err)

	ctx1 := ddnnf.NewContext(g, f)
	ctx2 := ddnnf.NewContext(g2, f)
	require.True(t, ctx1.Count(root).Equal(ctx2.Count(root2)))
	require.True(t, ctx2.Count(root2).Equal(num.FromInt64(3)))
}

func TestWriteFalseLeaf(t *testing.T) {
	f := cnf.NewFormula(1)
	s := cdcl.New(1)
	require.True(t, s.AddClause(lit(0, true)))
	require.False(t, s.AddClause(lit(0, false)))
	mgr := occurrence.New(f.Clauses, 1)

	d := compiler.NewDriver(s, mgr, compiler.DefaultOptions())
	root, err := d.Compile([]cnf.Variable{0}, nil)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, serialize.Write(&buf, d.Graph(), root, serialize.Options{}))
	require.Contains(t, buf.String(), "f ")
}

func TestWriteCertifiedIncludesFromCacheFlag(t *testing.T) {
	g, root, _ := compileDisjunction(t)

	var buf strings.Builder
	require.NoError(t, serialize.Write(&buf, g, root, serialize.Options{Certified: true}))
	require.Contains(t, buf.String(), "o ")
	// A certified branch line is "<parent> <child> <1|2> <lit> 0".
	require.Regexp(t, `(?m)^\d+ \d+ [12] -?\d+ 0$`, buf.String())
}
