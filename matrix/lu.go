// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// LU holds a Doolittle factorization P·A = L·U with partial (row) pivoting.
//
// L is unit lower triangular and U upper triangular; both are packed into a
// single row-major buffer (L strictly below the diagonal, U on and above).
// perm[i] is the original row of A that ended up at position i.
type LU struct {
	n    int
	lu   []float64
	perm []int
	sign float64 // +1/-1, parity of the row permutation
}

// Factorize computes the pivoted LU factorization of the square matrix m.
//
// Implementation:
//   - Stage 1: ValidateNotNil, ValidateSquare; copy m into a packed buffer.
//   - Stage 2: for each column k pick the row with the largest |a[i,k]|, i ≥ k,
//     swap it into place, then eliminate below the pivot (k-i-j order).
//
// Behavior highlights:
//   - Deterministic: ties in pivot magnitude keep the lowest row index.
//   - The input is never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//   - ErrSingular when an entire pivot column is exactly zero.
//
// Complexity: O(n³) time, O(n²) memory.
func Factorize(m Matrix) (*LU, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	n := m.Rows()
	a := toDense(m).cloneDense().data

	f := &LU{n: n, lu: a, perm: make([]int, n), sign: 1}
	var i, j, k, p int
	var best, v, pivot, lik float64
	for i = 0; i < n; i++ {
		f.perm[i] = i
	}
	for k = 0; k < n; k++ {
		// pivot search
		p, best = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == 0 {
			return nil, matrixErrorf(opLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
			f.sign = -f.sign
		}
		// elimination
		pivot = a[k*n+k]
		for i = k + 1; i < n; i++ {
			lik = a[i*n+k] / pivot
			a[i*n+k] = lik
			if lik == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= lik * a[k*n+j]
			}
		}
	}

	return f, nil
}

// Size returns the order n of the factorized matrix.
func (f *LU) Size() int { return f.n }

// Det returns the determinant of the factorized matrix.
func (f *LU) Det() float64 {
	det := f.sign
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}

	return det
}

// Solve solves A·x = b and writes x into dst (len n). dst may alias b.
// Errors: ErrDimensionMismatch.
// Complexity: O(n²).
func (f *LU) Solve(dst, b []float64) error {
	if err := ValidateVecLen(b, f.n); err != nil {
		return matrixErrorf(opSolve, err)
	}
	if err := ValidateVecLen(dst, f.n); err != nil {
		return matrixErrorf(opSolve, err)
	}
	n := f.n
	y := make([]float64, n)
	var i, k int
	var sum float64
	// forward substitution: L·y = P·b
	for i = 0; i < n; i++ {
		sum = b[f.perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.lu[i*n+k] * y[k]
		}
		y[i] = sum
	}
	// backward substitution: U·x = y
	for i = n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < n; k++ {
			sum -= f.lu[i*n+k] * y[k]
		}
		y[i] = sum / f.lu[i*n+i]
	}
	copy(dst, y)

	return nil
}

// Inverse assembles A⁻¹ column by column from the factorization.
// Complexity: O(n³) time, O(n²) memory.
func (f *LU) Inverse() *Dense {
	n := f.n
	inv := &Dense{r: n, c: n, data: make([]float64, n*n)}
	e := make([]float64, n)
	x := make([]float64, n)
	var col, i int
	for col = 0; col < n; col++ {
		clear(e)
		e[col] = 1
		_ = f.Solve(x, e) // lengths are n by construction
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv
}

// Inverse computes A⁻¹ via pivoted LU. The input is never mutated.
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular (wrapped with opInverse).
func Inverse(m Matrix) (*Dense, error) {
	f, err := Factorize(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return f.Inverse(), nil
}
