package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/heuristics"
	"github.com/gitrdm/d4go/internal/occurrence"
)

func TestParsePartitionerKind(t *testing.T) {
	for _, name := range []string{"NO", "CB", "VB"} {
		_, ok := heuristics.ParsePartitionerKind(name)
		require.True(t, ok, name)
	}
	_, ok := heuristics.ParsePartitionerKind("bogus")
	require.False(t, ok)
}

func TestNewPartitionerNoneIsNil(t *testing.T) {
	require.Nil(t, heuristics.NewPartitioner(heuristics.PartitionerNone, false, false))
}

func TestBuildPriorityIntersectsSuppliedWithComponent(t *testing.T) {
	comp := occurrence.Component{Vars: []cnf.Variable{1, 2, 3}}
	mgr := occurrence.New(nil, 4)

	out := heuristics.BuildPriority([]cnf.Variable{3, 9, 1}, comp, mgr, nil)
	require.Equal(t, []cnf.Variable{3, 1}, out)
}

func TestBuildPriorityAppendsPartitionerCutSet(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(1, true), lit(2, true)),
	}
	mgr := occurrence.New(clauses, 3)
	comp := occurrence.Component{Vars: []cnf.Variable{0, 1, 2}, Clauses: []int{0, 1}}

	part := heuristics.NewPartitioner(heuristics.PartitionerVB, false, false)
	out := heuristics.BuildPriority(nil, comp, mgr, part)
	require.Contains(t, out, cnf.Variable(1)) // touches both clauses
}
