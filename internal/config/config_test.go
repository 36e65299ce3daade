package config_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/d4go/internal/cache"
	"github.com/gitrdm/d4go/internal/config"
	"github.com/gitrdm/d4go/internal/heuristics"
)

func TestBindParsesFlags(t *testing.T) {
	var c config.Config
	fs := pflag.NewFlagSet("d4", pflag.ContinueOnError)
	c.Bind(fs)

	require.NoError(t, fs.Parse([]string{"-mc", "-vh=VSIDS", "-ph=TRUE", "-optCache=2"}))
	require.True(t, c.ModelCount)
	require.Equal(t, "VSIDS", c.VarHeuristic)
	require.Equal(t, "TRUE", c.PhaseHeuristic)
	require.Equal(t, 2, c.OptCache)
}

func TestValidateRequiresAMode(t *testing.T) {
	c := config.Config{VarHeuristic: "VSADS", PhaseHeuristic: "POLARITY", Partitioner: "NO"}
	require.Error(t, c.Validate())

	c.ModelCount = true
	require.NoError(t, c.Validate())
}

func TestValidateRejectsUnknownHeuristic(t *testing.T) {
	c := config.Config{ModelCount: true, VarHeuristic: "BOGUS", PhaseHeuristic: "POLARITY", Partitioner: "NO"}
	require.Error(t, c.Validate())
}

func TestScoringPhasePartitioningResolve(t *testing.T) {
	c := config.Config{VarHeuristic: "DLCS", PhaseHeuristic: "OCCURRENCE", Partitioner: "CB"}

	scoring, err := c.Scoring()
	require.NoError(t, err)
	require.Equal(t, heuristics.DLCS, scoring)

	phase, err := c.Phase()
	require.NoError(t, err)
	require.Equal(t, heuristics.PhaseOccurrence, phase)

	part, err := c.Partitioning()
	require.NoError(t, err)
	require.Equal(t, heuristics.PartitionerCB, part)
}

func TestHitStrategyAndAging(t *testing.T) {
	c := config.Config{OptCache: 2, StrategyReduceCache: 1}
	require.Equal(t, cache.ResetToTotal, c.HitStrategy())
	require.Equal(t, cache.Halve, c.Aging())

	c2 := config.Config{OptCache: 1, StrategyReduceCache: 0}
	require.Equal(t, cache.IncrementByOne, c2.HitStrategy())
	require.Equal(t, cache.Subtract, c2.Aging())
}

func TestCacheEnabled(t *testing.T) {
	require.False(t, (&config.Config{OptCache: 0}).CacheEnabled())
	require.True(t, (&config.Config{OptCache: 1}).CacheEnabled())
}
