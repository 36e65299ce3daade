package cnf

import "sort"

// Formula is the top-level, in-memory CNF problem: a variable count plus the
// original (non-learnt) clause set, together with the optional weight table
// and projection mask described in §6.
type Formula struct {
	NumVars int
	Clauses []*Clause

	// Weight maps a Literal to its weight; absent entries default to 1.0
	// per the weights-file contract in §6.
	Weight map[Literal]float64

	// Projected marks which variables are observable; when empty every
	// variable is projected (§6 default).
	Projected []bool
}

// NewFormula allocates an empty formula over numVars variables.
func NewFormula(numVars int) *Formula {
	return &Formula{
		NumVars: numVars,
		Weight:  make(map[Literal]float64),
	}
}

// WeightOf returns the weight of a literal, defaulting to 1.0 (§6).
func (f *Formula) WeightOf(l Literal) float64 {
	if w, ok := f.Weight[l]; ok {
		return w
	}
	return 1.0
}

// IsProjected reports whether v is an observable variable. With no
// projection file loaded, every variable is projected (§6 default).
func (f *Formula) IsProjected(v Variable) bool {
	if len(f.Projected) == 0 {
		return true
	}
	if int(v) >= len(f.Projected) {
		return false
	}
	return f.Projected[v]
}

// SetProjected records the projected-variable set. vars are 0-based.
func (f *Formula) SetProjected(vars []Variable) {
	f.Projected = make([]bool, f.NumVars)
	for _, v := range vars {
		if int(v) < len(f.Projected) {
			f.Projected[v] = true
		}
	}
}

// NormalizeClause dedupes and sorts literals, reporting whether the clause
// is a tautology (contains both a literal and its negation), in which case
// it is a no-op and should be dropped — mirrored from the CDCL core's
// add_clause contract in §4.1 so the parser and the solver apply the exact
// same rule.
func NormalizeClause(lits []Literal) (out []Literal, tautology bool) {
	cp := make([]Literal, len(lits))
	copy(cp, lits)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out = cp[:0]
	for i, l := range cp {
		if i > 0 && l == out[len(out)-1] {
			continue // duplicate literal
		}
		if len(out) > 0 && l == out[len(out)-1].Neg() {
			tautology = true
		}
		out = append(out, l)
	}
	// a literal and its negation need not be adjacent after sorting by raw
	// packed value (they differ only in the low bit, so they *are*
	// adjacent); verify defensively in case of future encoding changes.
	seen := make(map[Variable]LitValue, len(out))
	tautology = false
	dedup := out[:0]
	for _, l := range out {
		want := True
		if !l.Sign() {
			want = False
		}
		if prev, ok := seen[l.Var()]; ok {
			if prev != want {
				tautology = true
			}
			continue
		}
		seen[l.Var()] = want
		dedup = append(dedup, l)
	}
	return dedup, tautology
}

// AddClause normalizes and appends a clause, silently dropping tautologies
// per §4.1's add_clause contract ("then it is a no-op returning ok").
func (f *Formula) AddClause(lits ...Literal) {
	norm, taut := NormalizeClause(lits)
	if taut || len(norm) == 0 && len(lits) > 0 {
		if taut {
			return
		}
	}
	f.Clauses = append(f.Clauses, NewClause(norm...))
}
