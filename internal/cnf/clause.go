package cnf

// ClauseRef is an arena index into a Formula's clause store. Per §9, smart
// pointers to clause records become an arena plus an integer index rather
// than a heap pointer, so watch lists and reasons stay copyable and cheap.
type ClauseRef int32

// Clause is an ordered list of distinct literals of length >= 1, tagged with
// the bookkeeping fields §3 requires for a CDCL core: attachment state,
// learnt/original provenance, an activity score and an optional reason
// index used only when emitting a resolution trace.
type Clause struct {
	Lits     []Literal
	Learnt   bool
	Attached bool
	Activity float64

	// TraceID identifies this clause in the optional resolution trace
	// (§6 "Certified variant"); zero means untracked.
	TraceID int32
}

// NewClause builds a Clause from the given literals. Callers are expected to
// have already deduped/sorted via Formula.AddClause's contract.
func NewClause(lits ...Literal) *Clause {
	cp := make([]Literal, len(lits))
	copy(cp, lits)
	return &Clause{Lits: cp, Attached: true}
}

// IsUnit reports a single-literal clause.
func (c *Clause) IsUnit() bool { return len(c.Lits) == 1 }

// IsEmpty reports the falsified (contradiction) clause.
func (c *Clause) IsEmpty() bool { return len(c.Lits) == 0 }

// Len returns the clause width.
func (c *Clause) Len() int { return len(c.Lits) }
