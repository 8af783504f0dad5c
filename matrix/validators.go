// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for common validation checks.
//  - Return plain sentinel errors wrapped with the validator tag so call sites
//    can wrap uniformly with their own operation name.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil (*Dense)(nil) stored in the interface is rejected as well.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *Sparse:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Assumes m is not nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateMulShape checks that a (r×k) and b (k×c) can be multiplied.
// Assumes both are not nil.
func ValidateMulShape(a, b Matrix) error {
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen[F Float](x []F, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBlock checks that the block [i, i+r) × [j, j+c) lies inside m.
func ValidateBlock(m Matrix, i, j, r, c int) error {
	if r <= 0 || c <= 0 {
		return validatorErrorf("ValidateBlock", ErrBadShape)
	}
	if i < 0 || j < 0 || i+r > m.Rows() || j+c > m.Cols() {
		return validatorErrorf("ValidateBlock", ErrOutOfRange)
	}

	return nil
}
