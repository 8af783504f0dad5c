// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix products and row-vector products against dense and sparse storage.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opMul          = "Mul"
	opRowMulDense  = "RowMulDense"
	opRowMulSparse = "RowMulSparse"
	opInverse      = "Inverse"
	opLU           = "LU"
	opSolve        = "LU.Solve"
)

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// A fresh Dense is returned; operands are not mutated.
//
// Behavior highlights:
//   - Dense×Dense uses flat indexing (i-k-j order).
//   - Sparse left operands iterate stored entries only.
//   - Any other combination falls back to At.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*k*c) dense, O(nnz(A)*c) sparse-left.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateMulShape(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, k, c := a.Rows(), a.Cols(), b.Cols()
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}

	bd, okB := b.(*Dense)
	if !okB {
		bd = toDense(b)
	}

	var i, j, p int
	var aik float64
	switch av := a.(type) {
	case *Dense:
		for i = 0; i < r; i++ {
			for p = 0; p < k; p++ {
				aik = av.data[i*k+p]
				for j = 0; j < c; j++ {
					out.data[i*c+j] += aik * bd.data[p*c+j]
				}
			}
		}
	case *Sparse:
		av.Each(func(i, p int, aik float64) {
			for j := 0; j < c; j++ {
				out.data[i*c+j] += aik * bd.data[p*c+j]
			}
		})
	default:
		var err error
		for i = 0; i < r; i++ {
			for p = 0; p < k; p++ {
				if aik, err = a.At(i, p); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, p, err))
				}
				for j = 0; j < c; j++ {
					out.data[i*c+j] += aik * bd.data[p*c+j]
				}
			}
		}
	}

	return out, nil
}

// toDense materializes any Matrix as *Dense for the fast paths.
func toDense(m Matrix) *Dense {
	switch v := m.(type) {
	case *Dense:
		return v
	case *Sparse:
		return v.ToDense()
	}
	r, c := m.Rows(), m.Cols()
	d := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			d.data[i*c+j], _ = m.At(i, j) // indices are in range by construction
		}
	}

	return d
}

// RowMulDense computes dst = x · d for a row vector x of length d.Rows().
// dst must have length d.Cols() and must not alias x; it is overwritten.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func RowMulDense[F Float](dst, x []F, d *Dense) error {
	if err := ValidateNotNil(d); err != nil {
		return matrixErrorf(opRowMulDense, err)
	}
	if err := ValidateVecLen(x, d.r); err != nil {
		return matrixErrorf(opRowMulDense, err)
	}
	if err := ValidateVecLen(dst, d.c); err != nil {
		return matrixErrorf(opRowMulDense, err)
	}
	clear(dst)
	var i, j int
	var xi F
	for i = 0; i < d.r; i++ {
		xi = x[i]
		row := d.data[i*d.c : (i+1)*d.c]
		for j = 0; j < d.c; j++ {
			dst[j] += xi * F(row[j])
		}
	}

	return nil
}

// RowMulSparse computes dst = x · s for a row vector x of length s.Rows().
// dst must have length s.Cols() and must not alias x; it is overwritten.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(nnz(s)).
func RowMulSparse[F Float](dst, x []F, s *Sparse) error {
	if err := ValidateNotNil(s); err != nil {
		return matrixErrorf(opRowMulSparse, err)
	}
	if err := ValidateVecLen(x, s.r); err != nil {
		return matrixErrorf(opRowMulSparse, err)
	}
	if err := ValidateVecLen(dst, s.c); err != nil {
		return matrixErrorf(opRowMulSparse, err)
	}
	clear(dst)
	var i, k int
	var xi F
	for i = 0; i < s.r; i++ {
		xi = x[i]
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			dst[s.colIdx[k]] += xi * F(s.vals[k])
		}
	}

	return nil
}
