package plan

// kind identifies the operation an atom represents in the expression DAG.
type kind uint8

const (
	kindZero kind = iota
	kindOrigin
	kindMul
	kindAdd
	kindSub
	kindNeg
)

// atom is a single node of the shared expression DAG. Nodes are identified
// by pointer: the same atom may appear under several parents, which is what
// makes common subexpressions computable exactly once.
//
// The graph itself is immutable after construction; only the resolution
// state (resolved/ref) and the output slot are mutated, by the extractor and
// the scheduler respectively.
type atom struct {
	op       kind
	children []*atom
	isZero   bool

	// src is the input slot an Origin leaf reads from. Valid only for
	// kindOrigin.
	src Ref

	// resolved reports whether ref holds the storage slot for this node's
	// value. Origin leaves start resolved to their own input slot.
	resolved bool
	ref      Ref

	// slot is the output-array position this node must be written to, or -1
	// if the node is not a selected output.
	slot int
}

// newZero returns a structurally-zero leaf. Zero atoms never carry a live
// reference and never appear as a child of a folded node.
func newZero() *atom {
	return &atom{op: kindZero, isZero: true, slot: -1}
}

// newOrigin returns a leaf bound to the given input slot, pre-resolved to
// that slot.
func newOrigin(src Ref) *atom {
	return &atom{op: kindOrigin, src: src, resolved: true, ref: src, slot: -1}
}

// add builds a+b, folding away zero operands.
func add(a, b *atom) *atom {
	if b.isZero {
		return a
	}
	if a.isZero {
		return b
	}
	return &atom{op: kindAdd, children: []*atom{a, b}, slot: -1}
}

// sub builds a-b. A zero minuend routes through neg so that no Sub node ever
// has a zero child.
func sub(a, b *atom) *atom {
	if b.isZero {
		return a
	}
	if a.isZero {
		return neg(b)
	}
	return &atom{op: kindSub, children: []*atom{a, b}, slot: -1}
}

// neg builds -a. Zero inputs never reach here: sub folds them first, and the
// convolution formula produces no direct negation.
func neg(a *atom) *atom {
	return &atom{op: kindNeg, children: []*atom{a}, slot: -1}
}

// mul builds a*b, collapsing to the zero leaf when either operand is zero.
// This is the fold that prunes whole product subtrees for absent positions.
func mul(a, b *atom) *atom {
	if a.isZero || b.isZero {
		return newZero()
	}
	return &atom{op: kindMul, children: []*atom{a, b}, slot: -1}
}

// unresolved returns the number of children whose storage slot is not yet
// assigned. A node is ready to schedule when this reaches zero.
func (a *atom) unresolved() int {
	n := 0
	for _, c := range a.children {
		if !c.resolved {
			n++
		}
	}
	return n
}
