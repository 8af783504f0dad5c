// SPDX-License-Identifier: MIT

// Package matrix: shared types used by the dense and sparse containers.
package matrix

// Float is the scalar constraint for generic kernels (row-vector products,
// illumination buffers, solution vectors). Stored matrices are float64.
type Float interface {
	~float32 | ~float64
}

// Matrix represents a two-dimensional array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c) for
// dense storage, O(nnz) for sparse).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Triplet is one (row, col, value) entry fed to the sparse builder.
type Triplet struct {
	Row int     // destination row
	Col int     // destination column
	Val float64 // value; exact zeros are dropped on build
}
