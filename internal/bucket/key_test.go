package bucket_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/bucket"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/occurrence"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

func TestBuildIsStableUnderVariableRelabeling(t *testing.T) {
	clausesA := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(1, false), lit(2, true)),
	}
	mgrA := occurrence.New(clausesA, 3)
	compA := occurrence.Component{Vars: []cnf.Variable{0, 1, 2}, Clauses: []int{0, 1}}
	keyA := bucket.Build(compA, mgrA)

	// Same structure over different variable labels: same key bytes.
	clausesB := []*cnf.Clause{
		cnf.NewClause(lit(10, true), lit(11, true)),
		cnf.NewClause(lit(11, false), lit(12, true)),
	}
	mgrB := occurrence.New(clausesB, 13)
	compB := occurrence.Component{Vars: []cnf.Variable{10, 11, 12}, Clauses: []int{0, 1}}
	keyB := bucket.Build(compB, mgrB)

	require.Equal(t, keyA.Bytes, keyB.Bytes)
}

func TestBuildDedupesDuplicateClauses(t *testing.T) {
	clauses := []*cnf.Clause{
		cnf.NewClause(lit(0, true), lit(1, true)),
		cnf.NewClause(lit(1, true), lit(0, true)), // same clause, different literal order
	}
	mgr := occurrence.New(clauses, 2)
	comp := occurrence.Component{Vars: []cnf.Variable{0, 1}, Clauses: []int{0, 1}}
	key := bucket.Build(comp, mgr)

	require.Equal(t, 1, key.NumClauses)
}

func TestBuildChoosesWidthFromMagnitude(t *testing.T) {
	var vars []cnf.Variable
	var lits []cnf.Literal
	for i := 0; i < 300; i++ {
		vars = append(vars, cnf.Variable(i))
		lits = append(lits, lit(i, true))
	}
	clauses := []*cnf.Clause{cnf.NewClause(lits...)}
	mgr := occurrence.New(clauses, 300)
	comp := occurrence.Component{Vars: vars, Clauses: []int{0}}
	key := bucket.Build(comp, mgr)

	require.Equal(t, 2, key.Width) // 300 vars needs more than one byte
}
