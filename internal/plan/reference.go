package plan

// Reference computes the full convolution of two equal-length sequences by
// the classic quadratic formula. It is the correctness oracle for compiled
// plans: coefficient k of the result is sum(u[i]*v[k-i]) over the valid
// range of i.
//
// The result has length 2n; the last entry is always the zero value, which
// matches the uniform 2n coefficient layout plans are compiled against.
func Reference[T Element](u, v []T) []T {
	n := len(u) - 1
	out := make([]T, 2*n+2)
	for k := range out {
		lo := k - n
		if lo < 0 {
			lo = 0
		}
		hi := k + 1
		if hi > n+1 {
			hi = n + 1
		}
		var sum T
		for i := lo; i < hi; i++ {
			sum += u[i] * v[k-i]
		}
		out[k] = sum
	}
	return out
}
