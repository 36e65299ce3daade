// Package config binds the CLI surface of §6 to a Config value using
// spf13/cobra and spf13/pflag, in the style of operator-cli's command
// tree: one cobra.Command per mode (count, compile, query), flags bound
// directly into struct fields. Config.Validate checks the mode flags and
// the -optCache and -strategy-reduce-cache ranges; the commands in cmd/d4
// do not call it.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/gitrdm/d4go/internal/cache"
	"github.com/gitrdm/d4go/internal/heuristics"
)

// ErrBudgetExceeded is returned when the SAT core's conflict or
// propagation budget is exhausted mid-compilation (§5, §7: "fatal to the
// current compilation; no partial result is emitted").
var ErrBudgetExceeded = errors.New("config: solve budget exceeded")

// ErrAllocationFailed is returned when an arena or slab allocator cannot
// grow to satisfy a request (§7: "fatal; the slab and arena allocators
// abort with a diagnostic").
var ErrAllocationFailed = errors.New("config: allocation failed")

// Config holds the flags every subcommand shares, per §6's CLI surface
// table.
type Config struct {
	InputPath string

	ModelCount   bool
	CompileDDNNF bool
	Query        bool
	Print        bool
	OutPath      string

	Preproc string

	OptCache            int
	ReduceCacheLog2     int
	StrategyReduceCache int

	VarHeuristic      string
	PhaseHeuristic    string
	Partitioner       string
	ReversePolarity   bool
	ReducePrimalGraph bool
	EquivSimplify     bool

	ProjectedFile string
	WeightsFile   string
	Precision     int
}

// Bind attaches every flag named in §6's CLI table to fs, writing into c.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.BoolVar(&c.ModelCount, "mc", false, "compute the weighted number of models only")
	fs.BoolVar(&c.CompileDDNNF, "dDNNF", false, "produce a d-DNNF")
	fs.BoolVar(&c.Query, "query", false, "accept an interactive stream of queries after compilation")
	fs.BoolVar(&c.Print, "print", false, "echo the (possibly preprocessed) CNF on stdout in DIMACS")
	fs.StringVar(&c.OutPath, "out", "", "file to emit the compiled d-DNNF to")

	fs.StringVar(&c.Preproc, "preproc", "", "+-separated preprocessing pipeline: backbone, vivification, occElimination")

	fs.IntVar(&c.OptCache, "optCache", 1, "caching mode: 0=off, 1=classic, 2=dynamic")
	fs.IntVar(&c.ReduceCacheLog2, "reduce-cache", 20, "cache-reduction periodicity as a power of two")
	fs.IntVar(&c.StrategyReduceCache, "strategy-reduce-cache", 0, "cache aging mode: 0=subtract, 1=halve")

	fs.StringVar(&c.VarHeuristic, "vh", "VSADS", "variable heuristic: VSADS|VSIDS|DLCS|JW-TS|MOM")
	fs.StringVar(&c.PhaseHeuristic, "ph", "POLARITY", "phase heuristic: TRUE|FALSE|POLARITY|OCCURRENCE")
	fs.StringVar(&c.Partitioner, "pv", "NO", "partitioner: NO|CB|VB")
	fs.BoolVar(&c.ReversePolarity, "rp", false, "reverse the polarity heuristic")
	fs.BoolVar(&c.ReducePrimalGraph, "rpg", false, "reduce the primal graph before partitioning")
	fs.BoolVar(&c.EquivSimplify, "eqs", false, "literal-equivalence simplification inside the partitioner")

	fs.StringVar(&c.ProjectedFile, "fpv", "", "projected-variables file")
	fs.StringVar(&c.WeightsFile, "wFile", "", "weights file")
	fs.IntVar(&c.Precision, "precision", 0, "float precision (bits) for weighted counting")
}

// Scoring resolves the -vh flag to a heuristics.ScoringMethod.
func (c *Config) Scoring() (heuristics.ScoringMethod, error) {
	m, ok := heuristics.ParseScoringMethod(c.VarHeuristic)
	if !ok {
		return 0, errors.Errorf("config: unknown -vh value %q", c.VarHeuristic)
	}
	return m, nil
}

// Phase resolves the -ph flag to a heuristics.PhaseMethod.
func (c *Config) Phase() (heuristics.PhaseMethod, error) {
	m, ok := heuristics.ParsePhaseMethod(c.PhaseHeuristic)
	if !ok {
		return 0, errors.Errorf("config: unknown -ph value %q", c.PhaseHeuristic)
	}
	return m, nil
}

// Partitioning resolves the -pv flag to a heuristics.PartitionerKind.
func (c *Config) Partitioning() (heuristics.PartitionerKind, error) {
	m, ok := heuristics.ParsePartitionerKind(c.Partitioner)
	if !ok {
		return 0, errors.Errorf("config: unknown -pv value %q", c.Partitioner)
	}
	return m, nil
}

// CacheEnabled reports whether -optCache selects anything but "off".
func (c *Config) CacheEnabled() bool { return c.OptCache != 0 }

// HitStrategy resolves -optCache to the cache's hit-counting strategy:
// classic mode increments by one, dynamic mode resets to the total.
func (c *Config) HitStrategy() cache.HitStrategy {
	if c.OptCache == 2 {
		return cache.ResetToTotal
	}
	return cache.IncrementByOne
}

// Aging resolves -strategy-reduce-cache to the cache's aging mode.
func (c *Config) Aging() cache.AgingMode {
	if c.StrategyReduceCache == 1 {
		return cache.Halve
	}
	return cache.Subtract
}

// Validate checks flag combinations that individual pflag types cannot
// express (§7's parse-error taxonomy covers the rest, at load time).
func (c *Config) Validate() error {
	if !c.ModelCount && !c.CompileDDNNF && !c.Query {
		return errors.New("config: one of -mc, -dDNNF or -query is required")
	}
	if c.OptCache < 0 || c.OptCache > 2 {
		return errors.Errorf("config: -optCache must be 0, 1 or 2, got %d", c.OptCache)
	}
	if c.StrategyReduceCache < 0 || c.StrategyReduceCache > 1 {
		return errors.Errorf("config: -strategy-reduce-cache must be 0 or 1, got %d", c.StrategyReduceCache)
	}
	if _, err := c.Scoring(); err != nil {
		return err
	}
	if _, err := c.Phase(); err != nil {
		return err
	}
	if _, err := c.Partitioning(); err != nil {
		return err
	}
	return nil
}
