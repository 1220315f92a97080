package plan

// addSeq performs the elementwise zero-folded addition of two equal-length
// sequences.
func addSeq(xs, ys []*atom) []*atom {
	r := make([]*atom, len(xs))
	for i := range xs {
		r[i] = add(xs[i], ys[i])
	}
	return r
}

// subSeq performs the elementwise zero-folded subtraction of two
// equal-length sequences.
func subSeq(xs, ys []*atom) []*atom {
	r := make([]*atom, len(xs))
	for i := range xs {
		r[i] = sub(xs[i], ys[i])
	}
	return r
}

// karatsuba builds the full convolution DAG for two sequences of length n
// (a power of two) and returns the 2n output coefficients, low to high.
//
// The three-multiplication decomposition: with x split into low half b and
// high half a, and y into d and c,
//
//	hi    = a*c
//	lo    = b*d
//	cross = (a-b)*(c-d)
//	mid   = hi + lo - cross
//
// so only three half-size products are computed instead of four, giving the
// O(n^log2(3)) multiplication count. Zero folding happens inside the atom
// constructors, so absent input positions never generate arithmetic.
//
// The result layout is lo[:m] ++ (lo[m:]++hi[:m] + mid) ++ hi[m:], length
// 4m = 2n. The base case returns the pair (x*y, 0) so every level uniformly
// yields twice its input length.
func karatsuba(x, y []*atom) []*atom {
	if len(x) == 1 {
		return []*atom{mul(x[0], y[0]), newZero()}
	}

	n := len(x)
	m := n / 2
	b, a := x[:m], x[m:]
	d, c := y[:m], y[m:]

	hi := karatsuba(a, c)
	lo := karatsuba(b, d)
	cross := karatsuba(subSeq(a, b), subSeq(c, d))
	mid := subSeq(addSeq(hi, lo), cross)

	inner := make([]*atom, 0, 2*m)
	inner = append(inner, lo[m:]...)
	inner = append(inner, hi[:m]...)

	out := make([]*atom, 0, 2*n)
	out = append(out, lo[:m]...)
	out = append(out, addSeq(inner, mid)...)
	out = append(out, hi[m:]...)
	return out
}
