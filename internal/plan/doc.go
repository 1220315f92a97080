// Package plan compiles fixed-size fast-convolution procedures.
//
// Given two symbolic index vectors of equal power-of-two length and an
// output selection mask, Compile builds the recursive three-multiplication
// (Karatsuba) convolution formula as a shared expression DAG, folds away
// arithmetic on structurally-zero positions, extracts the subgraph the
// selected outputs actually need, schedules it into a straight-line
// statement sequence, and renders both an instruction list and its textual
// form. The result depends only on the request shape, so one plan evaluates
// arbitrarily many operand values via Evaluate or Fn.
package plan
