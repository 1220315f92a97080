package plan

// extract walks the full coefficient sequence from its selected roots and
// returns the set of nodes that need a scheduled statement, in first-visit
// order.
//
// Output slots are numbered by order of appearance among selected mask
// entries, not by coefficient position: slot k is the k-th true entry.
//
// Zero nodes never need code. Origin leaves are pre-resolved and enter the
// set only when they are themselves a selected output (pass-through to an
// output slot). Every other node is collected exactly once, by identity, and
// its children are walked regardless, so shared subexpressions reachable
// through several parents are still found.
func extract(coeffs []*atom, mask []bool) []*atom {
	w := &walker{
		seen:   make(map[*atom]bool),
		walked: make(map[*atom]bool),
	}
	slot := 0
	for i, root := range coeffs {
		if !mask[i] {
			continue
		}
		root.slot = slot
		slot++
		w.visit(root)
	}
	return w.pending
}

type walker struct {
	pending []*atom
	// seen marks nodes already collected into pending.
	seen map[*atom]bool
	// walked marks nodes whose subtree has been fully traversed, so shared
	// subgraphs are descended once instead of once per parent.
	walked map[*atom]bool
}

func (w *walker) visit(a *atom) {
	if !a.isZero && !w.seen[a] && (a.op != kindOrigin || a.slot >= 0) {
		w.seen[a] = true
		w.pending = append(w.pending, a)
	}
	if w.walked[a] {
		return
	}
	w.walked[a] = true
	for _, c := range a.children {
		w.visit(c)
	}
}
