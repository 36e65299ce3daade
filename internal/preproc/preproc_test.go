package preproc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/preproc"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

func TestBackboneFindsForcedLiteral(t *testing.T) {
	// (x0) & (x0 v x1) -- x0 is forced true, x1 is free.
	f := cnf.NewFormula(2)
	f.AddClause(lit(0, true))
	f.AddClause(lit(0, true), lit(1, true))

	out, err := preproc.Backbone(f)
	require.NoError(t, err)

	found := false
	for _, c := range out.Clauses {
		if len(c.Lits) == 1 && c.Lits[0] == lit(0, true) {
			found = true
		}
	}
	require.True(t, found)
}

func TestBackboneUnsatIsNoOp(t *testing.T) {
	f := cnf.NewFormula(1)
	f.AddClause(lit(0, true))
	f.AddClause(lit(0, false))

	out, err := preproc.Backbone(f)
	require.NoError(t, err)
	require.Same(t, f, out)
}

func TestVivifyShortensClauseImpliedByUnit(t *testing.T) {
	// (x0) & (-x0 v x1 v x2): x0 is forced, so -x0 is false and drops out
	// and the second clause shrinks to (x1 v x2); the unit clause stays.
	f := cnf.NewFormula(3)
	f.AddClause(lit(0, true))
	f.AddClause(lit(0, false), lit(1, true), lit(2, true))

	out, err := preproc.Vivify(f)
	require.NoError(t, err)
	require.NotEmpty(t, out.Clauses)
	require.Len(t, out.Clauses, 2)
	require.Equal(t, []cnf.Literal{lit(0, true)}, out.Clauses[0].Lits)
	require.Equal(t, []cnf.Literal{lit(1, true), lit(2, true)}, out.Clauses[1].Lits)
}

func TestOccurrenceElimDropsSubsumedClause(t *testing.T) {
	// (x0) & (x0 v x1): the second clause is subsumed once x0 is forced.
	f := cnf.NewFormula(2)
	f.AddClause(lit(0, true))
	f.AddClause(lit(0, true), lit(1, true))

	out, err := preproc.OccurrenceElim(f)
	require.NoError(t, err)
	require.Len(t, out.Clauses, 1)
}

func TestForgetEliminatesVariableByResolution(t *testing.T) {
	// (x0 v x1) & (-x0 v x2); forgetting x0 yields (x1 v x2).
	f := cnf.NewFormula(3)
	f.AddClause(lit(0, true), lit(1, true))
	f.AddClause(lit(0, false), lit(2, true))

	out, err := preproc.Forget(f, 0)
	require.NoError(t, err)
	require.Len(t, out.Clauses, 1)
	require.ElementsMatch(t, []cnf.Literal{lit(1, true), lit(2, true)}, out.Clauses[0].Lits)
}

func TestForgetMergesDuplicateResolventLiterals(t *testing.T) {
	// (x0 v x1) & (-x0 v x1): resolving on x0 gives (x1 v x1), which merges
	// to the single literal x1 (a non-tautological resolvent).
	f := cnf.NewFormula(2)
	f.AddClause(lit(0, true), lit(1, true))
	f.AddClause(lit(0, false), lit(1, true))

	out, err := preproc.Forget(f, 0)
	require.NoError(t, err)
	require.Len(t, out.Clauses, 1)
	require.Equal(t, []cnf.Literal{lit(1, true)}, out.Clauses[0].Lits)
}

func TestParseFlagsOrdersStages(t *testing.T) {
	stages, err := preproc.ParseFlags("backbone+occElimination")
	require.NoError(t, err)
	require.Len(t, stages, 2)
}

func TestParseFlagsRejectsUnknownStage(t *testing.T) {
	_, err := preproc.ParseFlags("bogus")
	require.Error(t, err)
}

func TestRunThreadsStagesInOrder(t *testing.T) {
	f := cnf.NewFormula(1)
	f.AddClause(lit(0, true))

	stages, err := preproc.ParseFlags("backbone")
	require.NoError(t, err)
	out, err := preproc.Run(f, stages)
	require.NoError(t, err)
	require.NotNil(t, out)
}
