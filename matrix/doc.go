// Package matrix offers the small linear-algebra kernel the solver packages
// are built on.
//
// The matrix package provides:
//
//   - Dense: row-major float64 storage with bounds-checked At/Set and Block.
//   - Sparse: immutable CSR storage built from (row, col, value) triplets,
//     safe to share read-only between goroutines.
//   - LU: Doolittle factorization with partial pivoting, Solve and Inverse.
//   - Mul, RowMulDense, RowMulSparse: products, the latter two generic over
//     the Float scalar constraint.
//
// Errors are package sentinels wrapped with the operation name; match them
// with errors.Is.
package matrix
