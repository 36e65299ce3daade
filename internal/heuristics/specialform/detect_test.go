package specialform_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/heuristics/specialform"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

func TestDetectKrom(t *testing.T) {
	binary := []*cnf.Clause{cnf.NewClause(lit(0, true), lit(1, false))}
	require.True(t, specialform.DetectKrom(binary))

	ternary := []*cnf.Clause{cnf.NewClause(lit(0, true), lit(1, false), lit(2, true))}
	require.False(t, specialform.DetectKrom(ternary))
}

func TestKromSATDetectsSatisfiable(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(1, false), lit(2, true)),
	}
	require.True(t, specialform.KromSAT(clauses, 3))
}

func TestKromSATDetectsUnsatisfiable(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true)),
		cnf.NewClause(lit(0, false)),
	}
	require.False(t, specialform.KromSAT(clauses, 1))
}

func TestRenamableHornSearchFindsExactHorn(t *testing.T) {
	// Already Horn: at most one positive literal per clause.
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, false), lit(1, false), lit(2, true)),
		cnf.NewClause(lit(1, false), lit(2, false)),
	}
	_, notHorn := specialform.RenamableHornSearch(clauses, 3, 4, 16, rand.New(rand.NewSource(7)))
	require.Equal(t, 0, notHorn)
}

func TestClassifyPrefersKromOverHorn(t *testing.T) {
	clauses := []*cnf.Clause{cnf.NewClause(lit(0, true), lit(1, false))}
	require.Equal(t, specialform.Krom, specialform.Classify(clauses, 2))
}
