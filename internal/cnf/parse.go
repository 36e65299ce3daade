package cnf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ParseDIMACS reads a standard DIMACS CNF stream: a header line
// `p cnf <vars> <clauses>`, then whitespace-separated integer literals
// terminated by `0`, with `c`-prefixed comment lines ignored (§6). Gzip
// streams are detected by magic number and transparently decompressed.
func ParseDIMACS(r io.Reader) (*Formula, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, gerr := gzip.NewReader(br)
		if gerr != nil {
			return nil, errors.Wrap(gerr, "cnf: opening gzip stream")
		}
		defer gz.Close()
		br = bufio.NewReader(gz)
	}

	var f *Formula
	var expectedClauses int
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	cur := make([]Literal, 0, 8)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, errors.Errorf("cnf: malformed header at line %d: %q", lineNo, line)
			}
			nv, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "cnf: header variable count at line %d", lineNo)
			}
			nc, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrapf(err, "cnf: header clause count at line %d", lineNo)
			}
			f = NewFormula(nv)
			expectedClauses = nc
			continue
		}
		if f == nil {
			return nil, errors.Errorf("cnf: clause data at line %d before header", lineNo)
		}
		for _, tok := range strings.Fields(line) {
			x, err := strconv.Atoi(tok)
			if err != nil {
				return nil, errors.Wrapf(err, "cnf: malformed literal at line %d", lineNo)
			}
			if x == 0 {
				f.AddClause(cur...)
				cur = cur[:0]
				continue
			}
			if abs(x) > f.NumVars {
				return nil, errors.Errorf("cnf: literal %d at line %d exceeds declared variable count %d", x, lineNo, f.NumVars)
			}
			cur = append(cur, FromDimacs(x))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "cnf: scanning input")
	}
	if f == nil {
		return nil, errors.New("cnf: missing `p cnf` header")
	}
	if len(cur) > 0 {
		f.AddClause(cur...)
	}
	_ = expectedClauses // informational only; mismatches are not fatal
	return f, nil
}

// ParseWeights reads the weights file format of §6: one literal and its
// weight per pair, whitespace-separated; literals are signed 1-based DIMACS
// integers, missing literals default to 1.0.
func ParseWeights(r io.Reader, f *Formula) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		fields := strings.Fields(line)
		for i := 0; i+1 < len(fields); i += 2 {
			lit, err := strconv.Atoi(fields[i])
			if err != nil {
				return errors.Wrapf(err, "weights: parsing literal %q", fields[i])
			}
			w, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return errors.Wrapf(err, "weights: parsing weight %q", fields[i+1])
			}
			f.Weight[FromDimacs(lit)] = w
		}
	}
	return sc.Err()
}

// ParseProjection reads the projected-variables file of §6: comma- or
// newline-separated 1-based variable numbers.
func ParseProjection(r io.Reader, f *Formula) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "projection: reading file")
	}
	normalized := strings.NewReplacer("\n", ",", "\r", ",", "\t", ",").Replace(string(data))
	var vars []Variable
	for _, tok := range strings.Split(normalized, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return errors.Wrapf(err, "projection: parsing variable %q", tok)
		}
		vars = append(vars, Variable(n-1))
	}
	f.SetProjected(vars)
	return nil
}
