package preproc

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/gitrdm/d4go/internal/cnf"
)

// Stage is a single preprocessing pass, run once before the main recursion.
type Stage func(*cnf.Formula) (*cnf.Formula, error)

// Named stages recognized by §6's `-preproc <flags>` value.
const (
	StageBackbone     = "backbone"
	StageVivification = "vivification"
	StageOccElim      = "occElimination"
)

// ParseFlags parses a `+`-separated -preproc flag value into the ordered
// list of Stages it names.
func ParseFlags(flags string) ([]Stage, error) {
	if flags == "" {
		return nil, nil
	}
	var stages []Stage
	for _, name := range strings.Split(flags, "+") {
		switch name {
		case StageBackbone:
			stages = append(stages, Backbone)
		case StageVivification:
			stages = append(stages, Vivify)
		case StageOccElim:
			stages = append(stages, OccurrenceElim)
		default:
			return nil, errors.Errorf("preproc: unknown stage %q", name)
		}
	}
	return stages, nil
}

// Run threads f through stages in order, returning the final Formula.
func Run(f *cnf.Formula, stages []Stage) (*cnf.Formula, error) {
	cur := f
	for _, st := range stages {
		var err error
		cur, err = st(cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
