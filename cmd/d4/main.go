// Command d4 compiles propositional CNF into decision-DNNF and computes
// weighted model counts, per the CLI surface of §6.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	errorwrap "github.com/pkg/errors"

	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/compiler"
	"github.com/gitrdm/d4go/internal/config"
	"github.com/gitrdm/d4go/internal/counter"
	"github.com/gitrdm/d4go/internal/ddnnf"
	"github.com/gitrdm/d4go/internal/engine"
	"github.com/gitrdm/d4go/internal/occurrence"
	"github.com/gitrdm/d4go/internal/preproc"
	"github.com/gitrdm/d4go/internal/query"
	"github.com/gitrdm/d4go/internal/serialize"
)

// progressFormatter renders Info-level entries as §6's `c `-prefixed
// progress lines; every other level falls back to logrus's text format.
type progressFormatter struct {
	base logrus.Formatter
}

func (f *progressFormatter) Format(e *logrus.Entry) ([]byte, error) {
	if e.Level == logrus.InfoLevel {
		return []byte("c " + e.Message + "\n"), nil
	}
	return f.base.Format(e)
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&progressFormatter{base: &logrus.TextFormatter{}})
	log.SetOutput(os.Stdout)
	return log
}

func main() {
	log := newLogger()
	var cfg config.Config

	root := &cobra.Command{
		Use:           "d4",
		Short:         "Top-down decision-DNNF compiler and weighted model counter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg.Bind(root.PersistentFlags())

	root.AddCommand(
		newCountCmd(log, &cfg),
		newCompileCmd(log, &cfg),
		newQueryCmd(log, &cfg),
	)

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code of §6: 10 for a budget
// or allocation failure surfaced mid-run, 20 for an otherwise-fatal error,
// 0 is reserved for the success paths that return nil directly.
func exitCode(err error) int {
	if errors.Is(err, config.ErrBudgetExceeded) || errors.Is(err, config.ErrAllocationFailed) {
		return 10
	}
	return 20
}

func newCountCmd(log *logrus.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "count <cnf-file>",
		Short: "compute the weighted number of models and print s <number>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ModelCount = true
			cfg.InputPath = args[0]
			return runCount(log, cfg)
		},
	}
}

func newCompileCmd(log *logrus.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <cnf-file>",
		Short: "produce a d-DNNF, optionally writing it to -out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.CompileDDNNF = true
			cfg.InputPath = args[0]
			return runCompile(log, cfg)
		},
	}
}

func newQueryCmd(log *logrus.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "query <cnf-file>",
		Short: "compile, then answer an interactive query stream on stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Query = true
			cfg.InputPath = args[0]
			return runQuery(log, cfg)
		},
	}
}

// loadFormula parses the input CNF plus any weights/projection files,
// applies the requested preprocessing pipeline, and optionally echoes the
// result back out in DIMACS (-print).
func loadFormula(cfg *config.Config) (*cnf.Formula, error) {
	r, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, errorwrap.Wrap(err, "d4: opening input")
	}
	defer r.Close()

	f, err := cnf.ParseDIMACS(r)
	if err != nil {
		return nil, errorwrap.Wrap(err, "d4: parsing DIMACS")
	}

	if cfg.WeightsFile != "" {
		if err := loadWeights(cfg.WeightsFile, f); err != nil {
			return nil, err
		}
	}
	if cfg.ProjectedFile != "" {
		if err := loadProjection(cfg.ProjectedFile, f); err != nil {
			return nil, err
		}
	}

	stages, err := preproc.ParseFlags(cfg.Preproc)
	if err != nil {
		return nil, errorwrap.Wrap(err, "d4: parsing -preproc")
	}
	f, err = preproc.Run(f, stages)
	if err != nil {
		return nil, errorwrap.Wrap(err, "d4: preprocessing")
	}

	if cfg.Print {
		printDIMACS(f)
	}
	return f, nil
}

func loadWeights(path string, f *cnf.Formula) error {
	wr, err := os.Open(path)
	if err != nil {
		return errorwrap.Wrap(err, "d4: opening weights file")
	}
	defer wr.Close()
	return errorwrap.Wrap(cnf.ParseWeights(wr, f), "d4: parsing weights")
}

func loadProjection(path string, f *cnf.Formula) error {
	pr, err := os.Open(path)
	if err != nil {
		return errorwrap.Wrap(err, "d4: opening projection file")
	}
	defer pr.Close()
	return errorwrap.Wrap(cnf.ParseProjection(pr, f), "d4: parsing projection")
}

func printDIMACS(f *cnf.Formula) {
	fmt.Printf("p cnf %d %d\n", f.NumVars, len(f.Clauses))
	for _, c := range f.Clauses {
		for _, l := range c.Lits {
			fmt.Printf("%d ", l.Dimacs())
		}
		fmt.Println("0")
	}
}

func allVars(f *cnf.Formula) []cnf.Variable {
	vars := make([]cnf.Variable, f.NumVars)
	for v := 0; v < f.NumVars; v++ {
		vars[v] = cnf.Variable(v)
	}
	return vars
}

func newSolver(f *cnf.Formula) *cdcl.Solver {
	s := cdcl.New(f.NumVars)
	for _, c := range f.Clauses {
		s.AddClause(c.Lits...)
	}
	return s
}

func counterOptions(cfg *config.Config) (counter.Options, error) {
	scoring, err := cfg.Scoring()
	if err != nil {
		return counter.Options{}, err
	}
	phase, err := cfg.Phase()
	if err != nil {
		return counter.Options{}, err
	}
	partitioner, err := cfg.Partitioning()
	if err != nil {
		return counter.Options{}, err
	}
	return counter.Options{
		Scoring:         scoring,
		Phase:           phase,
		Partitioner:     partitioner,
		ReversePolarity: cfg.ReversePolarity,
		CacheEnabled:    cfg.CacheEnabled(),
		CacheBuckets:    1 << 16,
		ReduceLog2:      cfg.ReduceCacheLog2,
		HitStrategy:     cfg.HitStrategy(),
		Aging:           cfg.Aging(),
		Precision:       cfg.Precision,
	}, nil
}

func compilerOptions(cfg *config.Config) (compiler.Options, error) {
	scoring, err := cfg.Scoring()
	if err != nil {
		return compiler.Options{}, err
	}
	phase, err := cfg.Phase()
	if err != nil {
		return compiler.Options{}, err
	}
	partitioner, err := cfg.Partitioning()
	if err != nil {
		return compiler.Options{}, err
	}
	return compiler.Options{
		Scoring:         scoring,
		Phase:           phase,
		Partitioner:     partitioner,
		ReversePolarity: cfg.ReversePolarity,
		CacheEnabled:    cfg.CacheEnabled(),
		CacheBuckets:    1 << 16,
		ReduceLog2:      cfg.ReduceCacheLog2,
		HitStrategy:     cfg.HitStrategy(),
		Aging:           cfg.Aging(),
	}, nil
}

// translateEngineErr turns engine.ErrInterrupted (§5's budget-exhaustion
// status) into the config sentinel the exit-code mapping understands.
func translateEngineErr(err error) error {
	if errors.Is(err, engine.ErrInterrupted) {
		return config.ErrBudgetExceeded
	}
	return err
}

func runCount(log *logrus.Logger, cfg *config.Config) error {
	f, err := loadFormula(cfg)
	if err != nil {
		return err
	}
	opts, err := counterOptions(cfg)
	if err != nil {
		return err
	}

	s := newSolver(f)
	mgr := occurrence.New(f.Clauses, f.NumVars)
	d := counter.NewDriver(s, mgr, f, opts)

	log.Info("compiling for model count")
	n, err := d.Count(allVars(f), nil)
	if err != nil {
		return translateEngineErr(err)
	}

	fmt.Printf("s %s\n", n.String())
	return nil
}

func runCompile(log *logrus.Logger, cfg *config.Config) error {
	f, err := loadFormula(cfg)
	if err != nil {
		return err
	}
	opts, err := compilerOptions(cfg)
	if err != nil {
		return err
	}

	s := newSolver(f)
	mgr := occurrence.New(f.Clauses, f.NumVars)
	d := compiler.NewDriver(s, mgr, opts)

	log.Info("compiling d-DNNF")
	root, err := d.Compile(allVars(f), nil)
	if err != nil {
		return translateEngineErr(err)
	}

	ctx := ddnnf.NewContext(d.Graph(), f)
	fmt.Printf("s %s\n", ctx.Count(root).String())

	w := os.Stdout
	if cfg.OutPath != "" {
		file, err := os.Create(cfg.OutPath)
		if err != nil {
			return errorwrap.Wrap(err, "d4: creating -out file")
		}
		defer file.Close()
		w = file
	}
	if err := serialize.Write(w, d.Graph(), root, serialize.Options{}); err != nil {
		return errorwrap.Wrap(err, "d4: serializing d-DNNF")
	}

	if cfg.Query {
		return runQueryLoop(log, f, cfg)
	}
	return nil
}

func runQuery(log *logrus.Logger, cfg *config.Config) error {
	f, err := loadFormula(cfg)
	if err != nil {
		return err
	}
	return runQueryLoop(log, f, cfg)
}

func runQueryLoop(log *logrus.Logger, f *cnf.Formula, cfg *config.Config) error {
	opts, err := counterOptions(cfg)
	if err != nil {
		return err
	}

	log.Info("ready for queries")
	srv := query.NewServer(f, opts)
	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
		return errorwrap.Wrap(err, "d4: query stream")
	}
	return nil
}
