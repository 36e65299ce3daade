package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/heuristics"
	"github.com/gitrdm/d4go/internal/occurrence"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

func TestParseScoringMethod(t *testing.T) {
	for _, name := range []string{"VSADS", "VSIDS", "DLCS", "JW-TS", "MOM"} {
		_, ok := heuristics.ParseScoringMethod(name)
		require.True(t, ok, name)
	}
	_, ok := heuristics.ParseScoringMethod("bogus")
	require.False(t, ok)
}

func TestDLCSPrefersMoreFrequentVariable(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(0, false), lit(2, true)),
		cnf.NewClause(lit(0, true), lit(2, false)),
	}
	mgr := occurrence.New(clauses, 3)
	s := cdcl.New(3)
	scorer := heuristics.NewScorer(heuristics.DLCS, mgr, s)

	require.Greater(t, scorer.Score(0), scorer.Score(1))
}

func TestMOMPrefersShorterClauseOccurrences(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(1, true), lit(2, true), lit(3, true)),
	}
	mgr := occurrence.New(clauses, 4)
	s := cdcl.New(4)
	scorer := heuristics.NewScorer(heuristics.MOM, mgr, s)

	require.Greater(t, scorer.Score(0), scorer.Score(2))
}
