package plan

import (
	apperrors "github.com/agbru/convplan/internal/errors"
)

// Element is the set of coefficient types a plan can evaluate over. Any
// type with ring arithmetic (+, -, *) works; the generated procedure uses
// no other operations.
type Element interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// Evaluate runs the compiled plan over the operand sequences u and v and
// returns the selected convolution coefficients. The inputs may be longer
// than the compiled shape requires; extra elements are ignored. Slot k of
// the result holds the k-th selected coefficient in ascending position
// order; slots whose coefficient folded to zero hold the zero value.
//
// Evaluation touches no shared state, so one plan may be evaluated from
// many goroutines concurrently.
func Evaluate[T Element](p *Plan, u, v []T) ([]T, error) {
	if len(u) < p.uLen {
		return nil, apperrors.NewShapeError("u", "operand too short: got %d elements, plan reads %d", len(u), p.uLen)
	}
	if len(v) < p.vLen {
		return nil, apperrors.NewShapeError("v", "operand too short: got %d elements, plan reads %d", len(v), p.vLen)
	}

	t := make([]T, p.temps)
	r := make([]T, p.outputs)

	load := func(ref Ref) T {
		switch ref.Bank {
		case BankU:
			return u[ref.Index]
		case BankV:
			return v[ref.Index]
		case BankT:
			return t[ref.Index]
		default:
			return r[ref.Index]
		}
	}

	for _, in := range p.prog {
		var val T
		switch in.Op {
		case OpMul:
			val = load(in.Args[0])
			for _, a := range in.Args[1:] {
				val *= load(a)
			}
		case OpAdd:
			val = load(in.Args[0])
			for _, a := range in.Args[1:] {
				val += load(a)
			}
		case OpSub:
			val = load(in.Args[0]) - load(in.Args[1])
		case OpNeg:
			val = -load(in.Args[0])
		case OpCopy:
			val = load(in.Args[0])
		}
		if in.Dst.Bank == BankT {
			t[in.Dst.Index] = val
		} else {
			r[in.Dst.Index] = val
		}
	}
	return r, nil
}

// Fn binds the plan to a reusable convolution function over a fixed element
// type, the closest Go analogue of handing back a compiled procedure.
func Fn[T Element](p *Plan) func(u, v []T) ([]T, error) {
	return func(u, v []T) ([]T, error) {
		return Evaluate(p, u, v)
	}
}
