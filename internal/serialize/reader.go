package serialize

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/ddnnf"
)

// Read parses the text format written by Write back into a fresh Graph,
// returning the root Ref. It accepts both the plain and certified variants,
// serving as a round-trip oracle for the "serialize then re-parse yields
// an equivalent graph" property (§8).
func Read(r io.Reader) (*ddnnf.Graph, ddnnf.Ref, error) {
	g := ddnnf.NewGraph()
	refOf := make(map[int]ddnnf.Ref)
	lastID := -1

	type pendingDecision struct {
		posChild, negChild int
		posLit, negLit      cnf.Literal
		havePos, haveNeg    bool
	}
	decisions := make(map[int]*pendingDecision)

	type pendingAnd struct {
		children []int
	}
	ands := make(map[int]*pendingAnd)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "t":
			id, err := atoi(fields[1])
			if err != nil {
				return nil, ddnnf.NoRef, err
			}
			refOf[id] = g.NewLeaf(ddnnf.KindTrue)
			lastID = id

		case "f":
			id, err := atoi(fields[1])
			if err != nil {
				return nil, ddnnf.NoRef, err
			}
			refOf[id] = g.NewLeaf(ddnnf.KindFalse)
			lastID = id

		case "o":
			id, err := atoi(fields[1])
			if err != nil {
				return nil, ddnnf.NoRef, err
			}
			decisions[id] = &pendingDecision{}
			lastID = id

		case "a":
			id, err := atoi(fields[1])
			if err != nil {
				return nil, ddnnf.NoRef, err
			}
			ands[id] = &pendingAnd{}
			lastID = id

		default:
			// A branch or AND-child line: "<parent> <child> ..." with no
			// leading tag. Disambiguate by whether <parent> names a
			// pending Decision or AND header seen so far.
			parent, err := atoi(fields[0])
			if err != nil {
				return nil, ddnnf.NoRef, err
			}
			child, err := atoi(fields[1])
			if err != nil {
				return nil, ddnnf.NoRef, err
			}
			if d, ok := decisions[parent]; ok {
				lit := parseLastSignedBeforeZero(fields)
				if !d.havePos {
					d.havePos = true
					d.posChild = child
					d.posLit = lit
				} else {
					d.haveNeg = true
					d.negChild = child
					d.negLit = lit
				}
			} else if a, ok := ands[parent]; ok {
				a.children = append(a.children, child)
			} else {
				return nil, ddnnf.NoRef, errors.Errorf("serialize: branch line references unknown parent %d", parent)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ddnnf.NoRef, err
	}

	// Materialize AND and Decision headers in ascending id order: the
	// post-order format guarantees every child id is strictly smaller than
	// its parent's, so by the time we reach id X every child it names is
	// already in refOf, regardless of whether that child was itself an AND
	// or a Decision.
	pendingIDs := make([]int, 0, len(ands)+len(decisions))
	for id := range ands {
		pendingIDs = append(pendingIDs, id)
	}
	for id := range decisions {
		pendingIDs = append(pendingIDs, id)
	}
	sort.Ints(pendingIDs)

	for _, id := range pendingIDs {
		if a, ok := ands[id]; ok {
			children := make([]ddnnf.Ref, len(a.children))
			for i, c := range a.children {
				ref, ok := refOf[c]
				if !ok {
					return nil, ddnnf.NoRef, errors.Errorf("serialize: AND node %d references unresolved child %d", id, c)
				}
				children[i] = ref
			}
			refOf[id] = g.NewAnd(children, nil, nil)
			continue
		}
		d := decisions[id]
		pos, ok := refOf[d.posChild]
		if !ok {
			return nil, ddnnf.NoRef, errors.Errorf("serialize: decision %d references unresolved pos child", id)
		}
		neg, ok := refOf[d.negChild]
		if !ok {
			return nil, ddnnf.NoRef, errors.Errorf("serialize: decision %d references unresolved neg child", id)
		}
		refOf[id] = g.NewDecision(d.posLit, pos, neg, false, false, nil, nil)
	}

	root, ok := refOf[lastID]
	if !ok {
		return nil, ddnnf.NoRef, errors.New("serialize: no root node found")
	}
	return g, root, nil
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "serialize: parsing integer %q", s)
	}
	return v, nil
}

// parseLastSignedBeforeZero extracts the trailing signed-literal field of a
// branch line, which always sits immediately before the terminating 0.
func parseLastSignedBeforeZero(fields []string) cnf.Literal {
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i] == "0" {
			continue
		}
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		if v != 0 {
			return cnf.FromDimacs(v)
		}
	}
	return 0
}
