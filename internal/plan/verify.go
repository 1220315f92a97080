package plan

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/convplan/internal/errors"
)

// Verify cross-checks a compiled plan against the quadratic reference
// formula on rounds random integer inputs, spreading the work across
// available cores. It returns nil when every round matches, and a
// descriptive error for the first detected divergence.
//
// Each round draws fresh operand values from a per-round deterministic
// source, builds the dense coefficient sequences the plan's shape describes,
// and compares the plan's selected outputs against the reference restricted
// to the same positions. Deterministic seeding makes failures reproducible.
func Verify(ctx context.Context, p *Plan, rounds int, seed int64) error {
	if rounds <= 0 {
		return nil
	}

	a, b := p.Shape()
	mask := p.Mask()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for round := 0; round < rounds; round++ {
		round := round
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return verifyRound(p, a, b, mask, seed+int64(round))
		})
	}
	return g.Wait()
}

// verifyRound runs one randomized comparison.
func verifyRound(p *Plan, a, b []int, mask []bool, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	u := randomOperand(rng, p.uLen)
	v := randomOperand(rng, p.vLen)

	got, err := Evaluate(p, u, v)
	if err != nil {
		return apperrors.WrapError(err, "plan evaluation failed (seed %d)", seed)
	}

	// Dense coefficient sequences as the shape maps them: position k reads
	// operand index a[k], absent positions contribute zero.
	du := densify(a, u)
	dv := densify(b, v)
	full := Reference(du, dv)

	slot := 0
	for pos, sel := range mask {
		if !sel {
			continue
		}
		if got[slot] != full[pos] {
			return apperrors.NewInternalError(
				"plan diverges from reference at output slot %d (position %d): got %d, want %d (seed %d)",
				slot, pos, got[slot], full[pos], seed)
		}
		slot++
	}
	return nil
}

// randomOperand draws small coefficients so products stay far from int64
// overflow even for wide shapes.
func randomOperand(rng *rand.Rand, n int) []int64 {
	if n == 0 {
		n = 1
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int63n(2001) - 1000
	}
	return out
}

// densify expands an index vector over operand values into the dense
// per-position coefficient sequence the reference formula convolves.
func densify(idx []int, vals []int64) []int64 {
	out := make([]int64, len(idx))
	for k, v := range idx {
		if v == Absent {
			continue
		}
		out[k] = vals[v]
	}
	return out
}
