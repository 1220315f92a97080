package plan

import "testing"

func TestZeroFolding_Add(t *testing.T) {
	t.Parallel()

	z := newZero()
	o := newOrigin(Ref{Bank: BankU, Index: 0})

	cases := []struct {
		name string
		a, b *atom
		want *atom // nil means a fresh Add node is expected
	}{
		{"zero right operand returns left", o, z, o},
		{"zero left operand returns right", z, o, o},
		{"both zero collapses", z, newZero(), z},
		{"no zero builds node", o, newOrigin(Ref{Bank: BankV, Index: 1}), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := add(tc.a, tc.b)
			if tc.want != nil {
				if got != tc.want {
					t.Errorf("add folded to unexpected node")
				}
				return
			}
			if got.op != kindAdd || len(got.children) != 2 {
				t.Errorf("add built op=%d with %d children, want Add with 2", got.op, len(got.children))
			}
		})
	}
}

func TestZeroFolding_Sub(t *testing.T) {
	t.Parallel()

	o := newOrigin(Ref{Bank: BankU, Index: 0})

	t.Run("zero subtrahend returns minuend", func(t *testing.T) {
		if got := sub(o, newZero()); got != o {
			t.Error("sub(a, 0) should return a")
		}
	})

	t.Run("zero minuend routes through neg", func(t *testing.T) {
		got := sub(newZero(), o)
		if got.op != kindNeg {
			t.Fatalf("sub(0, b) op = %d, want Neg", got.op)
		}
		if len(got.children) != 1 || got.children[0] != o {
			t.Error("neg child should be the subtrahend")
		}
	})

	t.Run("no zero builds node", func(t *testing.T) {
		got := sub(o, newOrigin(Ref{Bank: BankV, Index: 2}))
		if got.op != kindSub || len(got.children) != 2 {
			t.Errorf("sub built op=%d with %d children, want Sub with 2", got.op, len(got.children))
		}
	})
}

func TestZeroFolding_Mul(t *testing.T) {
	t.Parallel()

	o := newOrigin(Ref{Bank: BankU, Index: 0})

	t.Run("zero operand collapses to zero", func(t *testing.T) {
		if got := mul(o, newZero()); !got.isZero {
			t.Error("mul(a, 0) should be zero")
		}
		if got := mul(newZero(), o); !got.isZero {
			t.Error("mul(0, b) should be zero")
		}
	})

	t.Run("no zero builds node", func(t *testing.T) {
		got := mul(o, newOrigin(Ref{Bank: BankV, Index: 0}))
		if got.op != kindMul || got.isZero {
			t.Errorf("mul built op=%d isZero=%v, want Mul node", got.op, got.isZero)
		}
	})
}

func TestOrigin_PreResolved(t *testing.T) {
	t.Parallel()

	src := Ref{Bank: BankV, Index: 7}
	o := newOrigin(src)
	if !o.resolved {
		t.Error("origin leaves must start resolved")
	}
	if o.ref != src {
		t.Errorf("origin ref = %v, want %v", o.ref, src)
	}
	if o.slot != -1 {
		t.Errorf("origin slot = %d, want -1", o.slot)
	}
}

func TestUnresolved_CountsOnlyPendingChildren(t *testing.T) {
	t.Parallel()

	resolved := newOrigin(Ref{Bank: BankU, Index: 0})
	pending := &atom{op: kindMul, slot: -1}
	node := &atom{op: kindAdd, children: []*atom{resolved, pending}, slot: -1}

	if got := node.unresolved(); got != 1 {
		t.Errorf("unresolved() = %d, want 1", got)
	}
	pending.resolved = true
	if got := node.unresolved(); got != 0 {
		t.Errorf("unresolved() after resolve = %d, want 0", got)
	}
}
