package occurrence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/occurrence"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

func TestComputeComponentsSplitsDisjointGroups(t *testing.T) {
	// (0 v 1) & (2 v 3): two disjoint components.
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(2, true), lit(3, true)),
	}
	mgr := occurrence.New(clauses, 4)

	comps, free := mgr.ComputeComponents([]cnf.Variable{0, 1, 2, 3})
	require.Len(t, comps, 2)
	require.Empty(t, free)
}

func TestComputeComponentsDetectsFreeVariable(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
	}
	mgr := occurrence.New(clauses, 3)

	comps, free := mgr.ComputeComponents([]cnf.Variable{0, 1, 2})
	require.Len(t, comps, 1)
	require.Equal(t, []cnf.Variable{2}, free)
}

func TestPreUpdatePostUpdateRoundTrips(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(1, false), lit(2, true)),
	}
	mgr := occurrence.New(clauses, 3)

	before := len(mgr.CurrentClauses())

	mgr.PreUpdate([]cnf.Literal{lit(0, true)})
	require.Less(t, len(mgr.CurrentClauses()), before)

	mgr.PostUpdate([]cnf.Literal{lit(0, true)})
	require.Equal(t, before, len(mgr.CurrentClauses()))
}

func TestUpdateCurrentClauseSetScopesView(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(2, true), lit(3, true)),
	}
	mgr := occurrence.New(clauses, 4)
	comps, _ := mgr.ComputeComponents([]cnf.Variable{0, 1, 2, 3})
	require.Len(t, comps, 2)

	mgr.UpdateCurrentClauseSet(comps[0])
	require.Equal(t, comps[0].Clauses, mgr.CurrentClauses())
	mgr.PopPreviousClauseSet()

	require.Len(t, mgr.CurrentClauses(), 2)
}
