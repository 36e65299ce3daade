// Package query implements the interactive query stream of §6: lines of
// the form "m <lits> 0" (model count under conditioning) or "d <lits> 0"
// (satisfiability under conditioning), one per line, EOF-terminated,
// answered with "s <number>" or "s SAT"/"s UNS" respectively.
package query

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gitrdm/d4go/internal/cdcl"
	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/counter"
	"github.com/gitrdm/d4go/internal/num"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// Server answers queries against a fixed base Formula. Each query is
// independent: conditioning literals from one line never leak into the
// next.
type Server struct {
	formula *cnf.Formula
	opts    counter.Options
}

// NewServer builds a Server that counts with opts against formula.
func NewServer(formula *cnf.Formula, opts counter.Options) *Server {
	return &Server{formula: formula, opts: opts}
}

// Run reads queries from r, one per line, and writes an "s ..." response
// line per query to w until r reaches EOF.
func (srv *Server) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		resp, err := srv.Answer(line)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, resp); err != nil {
			return errors.Wrap(err, "query: write response")
		}
	}
	return errors.Wrap(scanner.Err(), "query: read stream")
}

// Answer evaluates a single query line and returns its "s ..." response.
func (srv *Server) Answer(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", errors.New("query: empty line")
	}

	lits, err := parseLiterals(fields[1:])
	if err != nil {
		return "", errors.Wrapf(err, "query %q", line)
	}

	switch fields[0] {
	case "m":
		n, err := srv.count(lits)
		if err != nil {
			return "", err
		}
		return "s " + n.String(), nil
	case "d":
		sat, err := srv.decide(lits)
		if err != nil {
			return "", err
		}
		if sat {
			return "s SAT", nil
		}
		return "s UNS", nil
	default:
		return "", errors.Errorf("query: unknown kind %q", fields[0])
	}
}

// parseLiterals reads a whitespace-separated list of signed DIMACS
// literals terminated by a 0 (the terminating 0 itself is not returned).
func parseLiterals(fields []string) ([]cnf.Literal, error) {
	var lits []cnf.Literal
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "literal %q", f)
		}
		if v == 0 {
			break
		}
		lits = append(lits, cnf.FromDimacs(v))
	}
	return lits, nil
}

// conditioned returns a copy of the base formula with each literal in lits
// asserted as an additional unit clause.
func (srv *Server) conditioned(lits []cnf.Literal) *cnf.Formula {
	out := cnf.NewFormula(srv.formula.NumVars)
	out.Clauses = append(out.Clauses, srv.formula.Clauses...)
	for l, wgt := range srv.formula.Weight {
		out.Weight[l] = wgt
	}
	if len(srv.formula.Projected) > 0 {
		out.Projected = append([]bool(nil), srv.formula.Projected...)
	}
	for _, l := range lits {
		out.AddClause(l)
	}
	return out
}

func allVars(f *cnf.Formula) []cnf.Variable {
	vars := make([]cnf.Variable, f.NumVars)
	for v := 0; v < f.NumVars; v++ {
		vars[v] = cnf.Variable(v)
	}
	return vars
}

func (srv *Server) count(lits []cnf.Literal) (num.Num, error) {
	f := srv.conditioned(lits)

	s := cdcl.New(f.NumVars)
	for _, c := range f.Clauses {
		s.AddClause(c.Lits...)
	}
	mgr := occurrence.New(f.Clauses, f.NumVars)

	d := counter.NewDriver(s, mgr, f, srv.opts)
	n, err := d.Count(allVars(f), nil)
	if err != nil {
		return num.Num{}, errors.Wrap(err, "query: count")
	}
	return n, nil
}

func (srv *Server) decide(lits []cnf.Literal) (bool, error) {
	s := cdcl.New(srv.formula.NumVars)
	for _, c := range srv.formula.Clauses {
		s.AddClause(c.Lits...)
	}

	s.SetAssumptions(lits)
	res, err := s.Solve()
	if err != nil {
		return false, errors.Wrap(err, "query: decide")
	}
	return res == cdcl.Sat, nil
}
