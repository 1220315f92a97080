package plan

import (
	"fmt"
	"strings"
)

// renderSource assembles the textual form of a compiled plan. One line per
// scheduled statement in mini-language syntax, a header naming the shape,
// and a trailing return carrying the operation tally:
//
//	# convolution plan: n=4, outputs=8
//	t[0] = u[0]*v[0]
//	r[0] = t[0]
//	...
//	return r  # stats: mul=9 add=7 sub=8 neg=0
//
// Output slots not assigned by any statement hold the zero value the output
// array is initialized with (a selected coefficient that folded to zero).
func renderSource(p *Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# convolution plan: n=%d, outputs=%d\n", p.n, p.outputs)
	for _, in := range p.prog {
		fmt.Fprintf(&b, "%s = %s\n", in.Dst, in.expr())
	}
	fmt.Fprintf(&b, "return r  # stats: mul=%d add=%d sub=%d neg=%d\n",
		p.stats.Mul, p.stats.Add, p.stats.Sub, p.stats.Neg)
	return b.String()
}
