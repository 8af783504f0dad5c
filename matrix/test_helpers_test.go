// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for the dense/sparse kernels.
//   • Keep all data finite so numeric checks stay exact where they can.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/reflux/matrix"
)

// hide wraps any Matrix to hide its concrete type from type switches,
// forcing the generic At-based fallback paths.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return d
}

// MustSet writes v at (i,j) or fails the test.
func MustSet(t testing.TB, m *matrix.Dense, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v))
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// FromRows builds a Dense from a rectangular [][]float64 literal.
func FromRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	d := MustDense(t, len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			MustSet(t, d, i, j, v)
		}
	}

	return d
}

// RandomFill fills m with deterministic pseudo-random values in [-1, 1).
func RandomFill(t testing.TB, m *matrix.Dense, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			MustSet(t, m, i, j, 2*rng.Float64()-1)
		}
	}
}

// RequireAllClose compares two matrices entry by entry within tol.
func RequireAllClose(t testing.TB, want, got matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	var i, j int
	for i = 0; i < want.Rows(); i++ {
		for j = 0; j < want.Cols(); j++ {
			require.InDelta(t, MustAt(t, want, i, j), MustAt(t, got, i, j), tol, "entry [%d,%d]", i, j)
		}
	}
}
