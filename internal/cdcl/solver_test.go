package cdcl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
)

func lit(v int, positive bool) cnf.Literal {
	return cnf.MkLit(cnf.Variable(v), positive)
}

func TestSolveSatisfiable(t *testing.T) {
	s := cdcl.New(3)
	require.True(t, s.AddClause(lit(0, true), lit(1, true)))
	require.True(t, s.AddClause(lit(0, false), lit(2, true)))

	res, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, cdcl.Sat, res)
}

func TestSolveRootUnsat(t *testing.T) {
	s := cdcl.New(1)
	require.True(t, s.AddClause(lit(0, true)))
	require.False(t, s.AddClause(lit(0, false)))

	res, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, cdcl.Unsat, res)
}

func TestSolveAssumptionConflict(t *testing.T) {
	s := cdcl.New(2)
	require.True(t, s.AddClause(lit(0, true), lit(1, true)))
	s.SetAssumptions([]cnf.Literal{lit(0, false), lit(1, false)})

	res, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, cdcl.Unsat, res)
	require.NotEmpty(t, s.FinalConflict())
}

func TestAddClauseDropsTautology(t *testing.T) {
	s := cdcl.New(1)
	require.True(t, s.AddClause(lit(0, true), lit(0, false)))
	res, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, cdcl.Sat, res)
}
