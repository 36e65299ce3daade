package query_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/counter"
	"github.com/gitrdm/d4go/internal/query"
)

func lit(v int, positive bool) cnf.Literal { return cnf.MkLit(cnf.Variable(v), positive) }

// buildS1 returns the S1 scenario: (x0 v x1) & (-x0 v x2), unweighted.
func buildS1() *cnf.Formula {
	f := cnf.NewFormula(3)
	f.AddClause(lit(0, true), lit(1, true))
	f.AddClause(lit(0, false), lit(2, true))
	return f
}

func TestAnswerModelCount(t *testing.T) {
	srv := query.NewServer(buildS1(), counter.DefaultOptions())
	resp, err := srv.Answer("m 0")
	require.NoError(t, err)
	require.Equal(t, "s 4", resp)
}

func TestAnswerDecisionSatisfiable(t *testing.T) {
	srv := query.NewServer(buildS1(), counter.DefaultOptions())
	resp, err := srv.Answer("d 1 0")
	require.NoError(t, err)
	require.Equal(t, "s SAT", resp)
}

func TestAnswerModelCountUnderConditioning(t *testing.T) {
	srv := query.NewServer(buildS1(), counter.DefaultOptions())
	resp, err := srv.Answer("m -1 -2 -3 0")
	require.NoError(t, err)
	require.Equal(t, "s 0", resp)
}

func TestAnswerUnknownKind(t *testing.T) {
	srv := query.NewServer(buildS1(), counter.DefaultOptions())
	_, err := srv.Answer("x 0")
	require.Error(t, err)
}

func TestRunAnswersEachLineUntilEOF(t *testing.T) {
	srv := query.NewServer(buildS1(), counter.DefaultOptions())

	var out strings.Builder
	in := strings.NewReader("d 1 0\nm 0\n")
	require.NoError(t, srv.Run(in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{"s SAT", "s 4"}, lines)
}
