// Package serialize implements the external d-DNNF text format of §4.9
// and §6: post-order emission with first-visit node indices, and a
// round-trip reader usable as an oracle for property testing (§8).
package serialize

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gitrdm/d4go/internal/cnf"
	"github.com/gitrdm/d4go/internal/ddnnf"
)

// Options controls whether the certified variant (resolution-reason lists
// and from-cache flags) is emitted.
type Options struct {
	Certified bool
}

// Write emits g's graph rooted at root in post-order, assigning each node
// an id on first visit, per §4.9/§6.
func Write(w io.Writer, g *ddnnf.Graph, root ddnnf.Ref, opts Options) error {
	bw := bufio.NewWriter(w)
	ids := make(map[ddnnf.Ref]int)
	if _, err := emit(bw, g, root, ids, opts); err != nil {
		return err
	}
	return bw.Flush()
}

// emit assigns (or reuses) an id for r, writing its line(s) the first time
// it is visited, and returns that id.
func emit(w *bufio.Writer, g *ddnnf.Graph, r ddnnf.Ref, ids map[ddnnf.Ref]int, opts Options) (int, error) {
	if id, ok := ids[r]; ok {
		return id, nil
	}
	n := g.Node(r)

	switch n.Kind {
	case ddnnf.KindTrue:
		id := len(ids)
		ids[r] = id
		_, err := fmt.Fprintf(w, "t %d 0\n", id)
		return id, err

	case ddnnf.KindFalse:
		id := len(ids)
		ids[r] = id
		_, err := fmt.Fprintf(w, "f %d 0\n", id)
		return id, err

	case ddnnf.KindUnary:
		return emit(w, g, n.Child, ids, opts)

	case ddnnf.KindDecision:
		posID, err := emit(w, g, n.Pos, ids, opts)
		if err != nil {
			return 0, err
		}
		negID, err := emit(w, g, n.Neg, ids, opts)
		if err != nil {
			return 0, err
		}
		id := len(ids)
		ids[r] = id
		if opts.Certified {
			if _, err := fmt.Fprintf(w, "o %d 2 %s 0\n", id, formatReasons(n.ReasonIDs)); err != nil {
				return 0, err
			}
		} else {
			if _, err := fmt.Fprintf(w, "o %d 0\n", id); err != nil {
				return 0, err
			}
		}
		if err := writeBranch(w, id, posID, n.DecisionLit, n.FromCachePos, opts); err != nil {
			return 0, err
		}
		if err := writeBranch(w, id, negID, n.DecisionLit.Neg(), n.FromCacheNeg, opts); err != nil {
			return 0, err
		}
		return id, nil

	case ddnnf.KindAnd, ddnnf.KindRoot:
		childIDs := make([]int, len(n.Children))
		for i, ch := range n.Children {
			cid, err := emit(w, g, ch, ids, opts)
			if err != nil {
				return 0, err
			}
			childIDs[i] = cid
		}
		id := len(ids)
		ids[r] = id
		if _, err := fmt.Fprintf(w, "a %d 0\n", id); err != nil {
			return 0, err
		}
		for _, cid := range childIDs {
			if _, err := fmt.Fprintf(w, "%d %d 0\n", id, cid); err != nil {
				return 0, err
			}
		}
		return id, nil

	default:
		return 0, fmt.Errorf("serialize: unhandled node kind %d", n.Kind)
	}
}

func writeBranch(w *bufio.Writer, parentID, childID int, branchLit cnf.Literal, fromCache bool, opts Options) error {
	if opts.Certified {
		flag := 2
		if fromCache {
			flag = 1
		}
		_, err := fmt.Fprintf(w, "%d %d %d %d 0\n", parentID, childID, flag, branchLit.Dimacs())
		return err
	}
	_, err := fmt.Fprintf(w, "%d %d %d 0\n", parentID, childID, branchLit.Dimacs())
	return err
}

func formatReasons(ids []int32) string {
	if len(ids) == 0 {
		return ""
	}
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprint(id)
	}
	return out
}
