package plan

import (
	apperrors "github.com/agbru/convplan/internal/errors"
)

// Absent marks an input position that carries no coefficient. The builder
// turns such positions into structural zeros, and zero folding removes every
// piece of arithmetic they would otherwise feed.
const Absent = -1

// Stats tallies the arithmetic operations a compiled plan performs per
// invocation. Pass-through copies and folded zeros are not counted.
type Stats struct {
	Mul int
	Add int
	Sub int
	Neg int
}

// Total returns the total number of arithmetic operations.
func (s Stats) Total() int { return s.Mul + s.Add + s.Sub + s.Neg }

// Plan is a compiled, shape-specific convolution procedure. It depends only
// on the request shape (length, absent positions, output mask), never on
// operand values, so one plan may evaluate many numeric inputs. The plan
// itself is immutable after compilation and safe for concurrent use.
type Plan struct {
	n       int
	outputs int
	temps   int
	uLen    int
	vLen    int
	a, b    []int
	mask    []bool
	prog    []Instr
	stats   Stats
	source  string
}

// N returns the input length the plan was compiled for.
func (p *Plan) N() int { return p.n }

// Outputs returns the number of selected output coefficients.
func (p *Plan) Outputs() int { return p.outputs }

// Temps returns the number of temporary slots an evaluation uses.
func (p *Plan) Temps() int { return p.temps }

// Stats returns the operation tally of the compiled procedure.
func (p *Plan) Stats() Stats { return p.stats }

// Instructions returns the scheduled statement sequence. The slice is shared
// with the plan and must not be modified.
func (p *Plan) Instructions() []Instr { return p.prog }

// Source returns the textual rendering of the procedure in the plan
// mini-language.
func (p *Plan) Source() string { return p.source }

// Mask returns a copy of the output selection mask, length 2n.
func (p *Plan) Mask() []bool {
	m := make([]bool, len(p.mask))
	copy(m, p.mask)
	return m
}

// Shape returns copies of the index vectors the plan was compiled from.
func (p *Plan) Shape() (a, b []int) {
	a = make([]int, len(p.a))
	b = make([]int, len(p.b))
	copy(a, p.a)
	copy(b, p.b)
	return a, b
}

// options collects the optional compile parameters.
type options struct {
	mask  []bool
	stats *Stats
}

// Option configures a compile request.
type Option func(*options)

// WithMask selects which of the 2n output coefficients the plan computes.
// The mask must have length exactly twice the input length. By default all
// coefficients are computed.
func WithMask(mask []bool) Option {
	return func(o *options) { o.mask = mask }
}

// WithStats copies the operation tally of the compiled plan into dst.
func WithStats(dst *Stats) Option {
	return func(o *options) { o.stats = dst }
}

// Compile builds the convolution plan for the given shape.
//
// a and b hold, per input position, the index of the coefficient to read
// from the corresponding operand, or Absent for a structurally-zero
// position. Both must have the same length, a power of two.
//
// The compiled plan computes, for each true mask entry in ascending
// position order, the corresponding coefficient of the full 2n-length
// convolution; result slot k holds the k-th selected coefficient.
//
// Compilation is all-or-nothing: validation failures are reported before
// any graph is built, as apperrors.ShapeError.
func Compile(a, b []int, opts ...Option) (*Plan, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateShape(a, b, o.mask); err != nil {
		return nil, err
	}

	n := len(a)
	mask := o.mask
	if mask == nil {
		mask = make([]bool, 2*n)
		for i := range mask {
			mask[i] = true
		}
	}

	x := leaves(a, BankU)
	y := leaves(b, BankV)

	prog, stats, temps, err := schedule(extract(karatsuba(x, y), mask))
	if err != nil {
		return nil, err
	}

	outputs := 0
	for _, sel := range mask {
		if sel {
			outputs++
		}
	}

	p := &Plan{
		n:       n,
		outputs: outputs,
		temps:   temps,
		uLen:    requiredLen(a),
		vLen:    requiredLen(b),
		a:       append([]int(nil), a...),
		b:       append([]int(nil), b...),
		mask:    append([]bool(nil), mask...),
		prog:    prog,
		stats:   stats,
	}
	p.source = renderSource(p)

	if o.stats != nil {
		*o.stats = stats
	}
	return p, nil
}

// validateShape checks the compile request before any graph construction.
// The checks mirror the validation contract: index validity, equal lengths,
// mask length, power-of-two length.
func validateShape(a, b []int, mask []bool) error {
	for _, v := range a {
		if v < Absent {
			return apperrors.NewShapeError("a", "index %d is negative (use Absent for empty positions)", v)
		}
	}
	for _, v := range b {
		if v < Absent {
			return apperrors.NewShapeError("b", "index %d is negative (use Absent for empty positions)", v)
		}
	}
	if len(a) != len(b) {
		return apperrors.NewShapeError("b", "input lengths differ: %d vs %d", len(a), len(b))
	}
	n := len(a)
	if mask != nil && len(mask) != 2*n {
		return apperrors.NewShapeError("mask", "mask length must be twice the input length: got %d, want %d", len(mask), 2*n)
	}
	if n == 0 || n&(n-1) != 0 {
		return apperrors.NewShapeError("a", "input length must be a power of 2, got %d", n)
	}
	return nil
}

// leaves builds the leaf sequence for one operand: an Origin atom bound to
// the requested input slot, or a zero leaf for absent positions.
func leaves(idx []int, bank Bank) []*atom {
	out := make([]*atom, len(idx))
	for i, v := range idx {
		if v == Absent {
			out[i] = newZero()
		} else {
			out[i] = newOrigin(Ref{Bank: bank, Index: v})
		}
	}
	return out
}

// requiredLen returns the minimum operand length the index vector can read
// from.
func requiredLen(idx []int) int {
	max := 0
	for _, v := range idx {
		if v != Absent && v+1 > max {
			max = v + 1
		}
	}
	return max
}
