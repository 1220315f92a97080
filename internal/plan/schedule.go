package plan

import (
	"sort"

	apperrors "github.com/agbru/convplan/internal/errors"
)

// schedule orders the pending node set into a valid straight-line program.
//
// It runs readiness rounds: the pending list is stably sorted by the number
// of unresolved children, then swept front to back, resolving every node
// whose children are all resolved at the moment it is reached (nodes
// resolved earlier in the same sweep count). Each resolved node is assigned
// either the next temporary slot or its designated output slot, and its
// reference becomes available to later nodes.
//
// Any topological order would be correct; this one is the simplest that is
// deterministic, which keeps operation counts reproducible for a given
// shape.
//
// A round that resolves nothing while nodes remain means the builder
// produced a cycle, which it cannot; it is reported as an internal error
// rather than looping forever.
func schedule(pending []*atom) ([]Instr, Stats, int, error) {
	var (
		prog  []Instr
		stats Stats
		temps int
	)

	for len(pending) > 0 {
		sort.SliceStable(pending, func(i, j int) bool {
			return pending[i].unresolved() < pending[j].unresolved()
		})

		i := 0
		for i < len(pending) && pending[i].unresolved() == 0 {
			a := pending[i]

			var dst Ref
			if a.slot >= 0 {
				dst = Ref{Bank: BankR, Index: a.slot}
			} else {
				dst = Ref{Bank: BankT, Index: temps}
				temps++
			}

			prog = append(prog, Instr{Op: opFor(a, &stats), Dst: dst, Args: argsFor(a)})
			a.ref = dst
			a.resolved = true
			i++
		}

		if i == 0 {
			return nil, Stats{}, 0, apperrors.NewInternalError(
				"scheduler deadlock: %d nodes pending, none ready", len(pending))
		}
		pending = pending[i:]
	}

	return prog, stats, temps, nil
}

// opFor maps a node kind to its statement operation and tallies it. Origin
// pass-throughs are plain copies and count as no arithmetic.
func opFor(a *atom, stats *Stats) Op {
	switch a.op {
	case kindMul:
		stats.Mul++
		return OpMul
	case kindAdd:
		stats.Add++
		return OpAdd
	case kindSub:
		stats.Sub++
		return OpSub
	case kindNeg:
		stats.Neg++
		return OpNeg
	default:
		return OpCopy
	}
}

// argsFor collects the operand references of a ready node. For an Origin
// pass-through the single operand is its input slot.
func argsFor(a *atom) []Ref {
	if a.op == kindOrigin {
		return []Ref{a.src}
	}
	args := make([]Ref, len(a.children))
	for i, c := range a.children {
		args[i] = c.ref
	}
	return args
}
