package preproc

import "github.com/gitrdm/d4go/internal/cnf"

// Forget eliminates variable v by resolution, grounded on
// preproc/Forgetting.hh: every clause mentioning v is replaced by the
// resolvents of each positive-v clause against each negative-v clause
// (tautological resolvents dropped), and clauses not mentioning v pass
// through unchanged. An empty, non-tautological resolvent is kept as an
// explicit empty clause so a downstream solver reports the formula
// unsatisfiable rather than silently losing the contradiction.
func Forget(f *cnf.Formula, v cnf.Variable) (*cnf.Formula, error) {
	pos := cnf.MkLit(v, true)
	neg := cnf.MkLit(v, false)

	var withPos, withNeg, rest []*cnf.Clause
	for _, c := range f.Clauses {
		hasPos, hasNeg := false, false
		for _, l := range c.Lits {
			if l == pos {
				hasPos = true
			}
			if l == neg {
				hasNeg = true
			}
		}
		switch {
		case hasPos:
			withPos = append(withPos, c)
		case hasNeg:
			withNeg = append(withNeg, c)
		default:
			rest = append(rest, c)
		}
	}

	kept := append([]*cnf.Clause(nil), rest...)
	for _, cp := range withPos {
		for _, cn := range withNeg {
			lits := make([]cnf.Literal, 0, len(cp.Lits)+len(cn.Lits)-2)
			for _, l := range cp.Lits {
				if l != pos {
					lits = append(lits, l)
				}
			}
			for _, l := range cn.Lits {
				if l != neg {
					lits = append(lits, l)
				}
			}
			norm, taut := cnf.NormalizeClause(lits)
			if taut {
				continue
			}
			kept = append(kept, cnf.NewClause(norm...))
		}
	}

	out := cloneFormula(f)
	out.Clauses = kept
	return out, nil
}

// ForgetAll eliminates every variable not marked in keep, in ascending
// variable order.
func ForgetAll(f *cnf.Formula, keep map[cnf.Variable]bool) (*cnf.Formula, error) {
	cur := f
	for v := cnf.Variable(0); int(v) < f.NumVars; v++ {
		if keep[v] {
			continue
		}
		var err error
		cur, err = Forget(cur, v)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
