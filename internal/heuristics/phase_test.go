package heuristics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/heuristics"
	"github.com/gitrdm/d4go/internal/occurrence"
)

func TestParsePhaseMethod(t *testing.T) {
	for _, name := range []string{"TRUE", "FALSE", "POLARITY", "OCCURRENCE"} {
		_, ok := heuristics.ParsePhaseMethod(name)
		require.True(t, ok, name)
	}
	_, ok := heuristics.ParsePhaseMethod("bogus")
	require.False(t, ok)
}

func TestPhaseTrueAndFalse(t *testing.T) {
	s := cdcl.New(1)
	mgr := occurrence.New(nil, 1)

	truth := heuristics.NewPhaseSelector(heuristics.PhaseTrue, s, mgr, false)
	require.True(t, truth.Positive(0))

	falsity := heuristics.NewPhaseSelector(heuristics.PhaseFalse, s, mgr, false)
	require.False(t, falsity.Positive(0))
}

func TestReversePolarityFlips(t *testing.T) {
	s := cdcl.New(1)
	mgr := occurrence.New(nil, 1)

	sel := heuristics.NewPhaseSelector(heuristics.PhaseTrue, s, mgr, true)
	require.False(t, sel.Positive(0))
}

func TestOccurrenceMajority(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true)),
		cnf.NewClause(lit(0, true)),
		cnf.NewClause(lit(0, false)),
	}
	mgr := occurrence.New(clauses, 1)
	s := cdcl.New(1)

	sel := heuristics.NewPhaseSelector(heuristics.PhaseOccurrence, s, mgr, false)
	require.True(t, sel.Positive(0))
}
