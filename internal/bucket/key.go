// Package bucket implements the residual-key builder (component D): the
// canonical byte encoding of a residual sub-formula used as the component
// cache's identity, per §4.3.
package bucket

import (
	"encoding/binary"
	"sort"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/occurrence"
)

// Key is the packed byte representation of a residual formula, together
// with the dimensions used to choose its integer width.
type Key struct {
	Bytes    []byte
	NumVars  int
	NumLits  int
	NumClauses int
	Width    int // 1, 2 or 4 — bytes per encoded integer
}

// width returns the smallest of {1, 2, 4} bytes sufficient to hold max.
func width(max int) int {
	switch {
	case max <= 0xFF:
		return 1
	case max <= 0xFFFF:
		return 2
	default:
		return 4
	}
}

func putUint(buf []byte, w int, v uint32) []byte {
	switch w {
	case 1:
		return append(buf, byte(v))
	case 2:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(v))
		return append(buf, b...)
	default:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		return append(buf, b...)
	}
}

// Build implements §4.3's algorithm: collect every unsatisfied clause
// incident on the component exactly once (supplied pre-collected by
// occurrence.Component, which discovers each clause index exactly once
// during its BFS), drop duplicate clauses, sort into length groups with a
// histogram, remap variables to dense 0-based indices, and pack everything
// into the smallest sufficient integer width.
func Build(comp occurrence.Component, mgr *occurrence.Manager) Key {
	varIndex := make(map[cnf.Variable]int, len(comp.Vars))
	for i, v := range comp.Vars {
		varIndex[v] = i
	}
	k := len(comp.Vars)

	type localClause struct {
		lits []uint32
	}
	seen := make(map[string]bool, len(comp.Clauses))
	var clauses []localClause
	totalLits := 0
	for _, ci := range comp.Clauses {
		c := mgr.Clause(ci)
		lits := make([]uint32, 0, len(c.Lits))
		for _, l := range c.Lits {
			local, ok := varIndex[l.Var()]
			if !ok {
				continue // variable outside the component: not part of the residual clause
			}
			sign := uint32(0)
			if !l.Sign() {
				sign = 1
			}
			lits = append(lits, (uint32(local)<<1)|sign)
		}
		sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
		sig := string(uint32SliceBytes(lits))
		if seen[sig] {
			continue
		}
		seen[sig] = true
		clauses = append(clauses, localClause{lits: lits})
		totalLits += len(lits)
	}

	sort.Slice(clauses, func(i, j int) bool {
		a, b := clauses[i].lits, clauses[j].lits
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for x := range a {
			if a[x] != b[x] {
				return a[x] < b[x]
			}
		}
		return false
	})

	// Length histogram: (count_of_size_s, s)* in ascending size order.
	type bucketEntry struct{ size, count int }
	var hist []bucketEntry
	for _, c := range clauses {
		n := len(hist)
		if n > 0 && hist[n-1].size == len(c.lits) {
			hist[n-1].count++
		} else {
			hist = append(hist, bucketEntry{size: len(c.lits), count: 1})
		}
	}

	maxVal := k << 1
	if len(clauses) > maxVal {
		maxVal = len(clauses)
	}
	for _, h := range hist {
		if h.size > maxVal {
			maxVal = h.size
		}
		if h.count > maxVal {
			maxVal = h.count
		}
	}
	w := width(maxVal)

	var body []byte
	body = putUint(body, w, uint32(len(hist)))
	for _, h := range hist {
		body = putUint(body, w, uint32(h.count))
		body = putUint(body, w, uint32(h.size))
	}
	for _, c := range clauses {
		for _, l := range c.lits {
			body = putUint(body, w, l)
		}
	}

	var header []byte
	header = append(header, byte(w))
	header = putUint(header, w, uint32(k))
	header = putUint(header, w, uint32(totalLits))
	header = putUint(header, w, uint32(len(clauses)))
	full := append(header, body...)

	return Key{
		Bytes:      full,
		NumVars:    k,
		NumLits:    totalLits,
		NumClauses: len(clauses),
		Width:      w,
	}
}

func uint32SliceBytes(xs []uint32) []byte {
	out := make([]byte, 0, len(xs)*4)
	for _, x := range xs {
		out = append(out, byte(x), byte(x>>8), byte(x>>16), byte(x>>24))
	}
	return out
}
