package plan

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/agbru/convplan/internal/errors"
)

func TestEvaluate_OperandLengthChecked(t *testing.T) {
	t.Parallel()

	p, err := Compile(indexRange(4), indexRange(4))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	t.Run("short u rejected", func(t *testing.T) {
		_, err := Evaluate(p, []int64{1, 2, 3}, []int64{1, 2, 3, 4})
		var shape apperrors.ShapeError
		if !errors.As(err, &shape) {
			t.Errorf("error = %v, want ShapeError", err)
		}
	})

	t.Run("short v rejected", func(t *testing.T) {
		_, err := Evaluate(p, []int64{1, 2, 3, 4}, []int64{1})
		var shape apperrors.ShapeError
		if !errors.As(err, &shape) {
			t.Errorf("error = %v, want ShapeError", err)
		}
	})

	t.Run("extra elements ignored", func(t *testing.T) {
		short, err := Evaluate(p, []int64{1, 2, 3, 4}, []int64{5, 6, 7, 8})
		if err != nil {
			t.Fatalf("Evaluate error: %v", err)
		}
		long, err := Evaluate(p, []int64{1, 2, 3, 4, 99, 98}, []int64{5, 6, 7, 8, 97})
		if err != nil {
			t.Fatalf("Evaluate error: %v", err)
		}
		for i := range short {
			if short[i] != long[i] {
				t.Errorf("slot %d differs with padded operands: %d vs %d", i, short[i], long[i])
			}
		}
	})
}

func TestEvaluate_ScatteredIndexes(t *testing.T) {
	t.Parallel()

	// Index vectors need not be 0..n-1: position k may read any coefficient.
	// Shape [3,1] x [0,2] convolves (u3 + u1*x) with (v0 + v2*x).
	p, err := Compile([]int{3, 1}, []int{0, 2})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	u := []int64{0, 20, 0, 10}
	v := []int64{7, 0, 9}
	got, err := Evaluate(p, u, v)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	// (10 + 20x)(7 + 9x) = 70 + 230x + 180x^2
	want := []int64{70, 230, 180, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coefficient %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEvaluate_FloatElements(t *testing.T) {
	t.Parallel()

	p, err := Compile(indexRange(4), indexRange(4))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	u := []float64{0.5, -1.25, 2.0, 3.5}
	v := []float64{4.0, 0.25, -2.5, 1.0}

	got, err := Evaluate(p, u, v)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	want := Reference(u, v)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("coefficient %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestEvaluate_ComplexElements(t *testing.T) {
	t.Parallel()

	p, err := Compile(indexRange(2), indexRange(2))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	u := []complex128{1 + 2i, 3 - 1i}
	v := []complex128{-2 + 0.5i, 4i}

	got, err := Evaluate(p, u, v)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	want := Reference(u, v)

	for i := range want {
		if d := got[i] - want[i]; real(d)*real(d)+imag(d)*imag(d) > 1e-18 {
			t.Errorf("coefficient %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFn_ReusableAcrossInvocations(t *testing.T) {
	t.Parallel()

	p, err := Compile(indexRange(4), indexRange(4))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	conv := Fn[int64](p)

	inputs := [][2][]int64{
		{{1, 2, 3, 4}, {5, 6, 7, 8}},
		{{-3, 0, 7, 1}, {2, -9, 4, 4}},
		{{0, 0, 0, 0}, {1, 1, 1, 1}},
	}

	for _, in := range inputs {
		got, err := conv(in[0], in[1])
		if err != nil {
			t.Fatalf("conv error: %v", err)
		}
		want := Reference(in[0], in[1])
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("u=%v v=%v: coefficient %d = %d, want %d", in[0], in[1], i, got[i], want[i])
			}
		}
	}
}

func TestEvaluate_ConcurrentUseOfOnePlan(t *testing.T) {
	t.Parallel()

	p, err := Compile(indexRange(8), indexRange(8))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	done := make(chan error, 16)
	for g := 0; g < 16; g++ {
		go func(g int) {
			u := make([]int64, 8)
			v := make([]int64, 8)
			for i := range u {
				u[i] = int64(g + i)
				v[i] = int64(g*i - 3)
			}
			got, err := Evaluate(p, u, v)
			if err != nil {
				done <- err
				return
			}
			want := Reference(u, v)
			for i := range want {
				if got[i] != want[i] {
					done <- apperrors.NewInternalError("goroutine %d: coefficient %d mismatch", g, i)
					return
				}
			}
			done <- nil
		}(g)
	}
	for g := 0; g < 16; g++ {
		if err := <-done; err != nil {
			t.Error(err)
		}
	}
}
