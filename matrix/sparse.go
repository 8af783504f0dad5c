// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"sort"
)

// Sparse is an immutable compressed-sparse-row (CSR) matrix of float64 values.
//
// Row i owns the half-open range rowPtr[i]:rowPtr[i+1] of colIdx/vals;
// column indices inside a row are strictly increasing and no stored value is
// an exact zero. Once built, a Sparse is read-only and safe to share between
// goroutines.
type Sparse struct {
	r, c   int
	rowPtr []int     // len r+1
	colIdx []int     // len nnz
	vals   []float64 // len nnz
}

// NewSparse builds an r×c CSR matrix from (row, col, value) triplets.
//
// Behavior highlights:
//   - Triplets are copied and sorted by (row, col); the input is not mutated.
//   - Duplicate coordinates are summed.
//   - Entries whose final value is exactly zero are dropped.
//
// Errors:
//   - ErrBadShape when rows or cols is not positive.
//   - ErrOutOfRange when a triplet lies outside the shape.
//
// Complexity: O(nnz log nnz) time, O(nnz) memory.
func NewSparse(rows, cols int, entries []Triplet) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf("NewSparse", ErrBadShape)
	}
	ts := make([]Triplet, len(entries))
	copy(ts, entries)
	for _, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, matrixErrorf("NewSparse", fmt.Errorf("(%d,%d): %w", t.Row, t.Col, ErrOutOfRange))
		}
	}
	sort.SliceStable(ts, func(a, b int) bool {
		if ts[a].Row != ts[b].Row {
			return ts[a].Row < ts[b].Row
		}
		return ts[a].Col < ts[b].Col
	})

	s := &Sparse{
		r:      rows,
		c:      cols,
		rowPtr: make([]int, rows+1),
		colIdx: make([]int, 0, len(ts)),
		vals:   make([]float64, 0, len(ts)),
	}
	var i, j int
	for i = 0; i < len(ts); i = j {
		// merge the run of duplicates starting at i
		sum := ts[i].Val
		for j = i + 1; j < len(ts) && ts[j].Row == ts[i].Row && ts[j].Col == ts[i].Col; j++ {
			sum += ts[j].Val
		}
		if sum == 0 {
			continue
		}
		s.colIdx = append(s.colIdx, ts[i].Col)
		s.vals = append(s.vals, sum)
		s.rowPtr[ts[i].Row+1]++
	}
	for i = 0; i < rows; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}

	return s, nil
}

// SparseView compresses d, keeping only its non-zero entries.
func SparseView(d *Dense) (*Sparse, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, matrixErrorf("SparseView", err)
	}
	ts := make([]Triplet, 0, d.r)
	var i, j int
	var v float64
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			if v = d.data[i*d.c+j]; v != 0 {
				ts = append(ts, Triplet{Row: i, Col: j, Val: v})
			}
		}
	}

	return NewSparse(d.r, d.c, ts)
}

// Rows returns the number of rows in the matrix.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the number of columns in the matrix.
func (s *Sparse) Cols() int { return s.c }

// NNZ returns the number of stored (non-zero) entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// At retrieves the element at (row, col); absent entries read as zero.
// Complexity: O(log k) for k stored entries in the row.
func (s *Sparse) At(row, col int) (float64, error) {
	if row < 0 || row >= s.r || col < 0 || col >= s.c {
		return 0, fmt.Errorf("Sparse.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	lo, hi := s.rowPtr[row], s.rowPtr[row+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], col)
	if k < hi && s.colIdx[k] == col {
		return s.vals[k], nil
	}

	return 0, nil
}

// Each calls fn for every stored entry in row-major order.
func (s *Sparse) Each(fn func(row, col int, v float64)) {
	var i, k int
	for i = 0; i < s.r; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			fn(i, s.colIdx[k], s.vals[k])
		}
	}
}

// Triplets returns the stored entries in row-major order.
func (s *Sparse) Triplets() []Triplet {
	out := make([]Triplet, 0, len(s.vals))
	s.Each(func(i, j int, v float64) {
		out = append(out, Triplet{Row: i, Col: j, Val: v})
	})

	return out
}

// Clone returns a deep copy of the matrix.
func (s *Sparse) Clone() Matrix {
	return &Sparse{
		r:      s.r,
		c:      s.c,
		rowPtr: append([]int(nil), s.rowPtr...),
		colIdx: append([]int(nil), s.colIdx...),
		vals:   append([]float64(nil), s.vals...),
	}
}

// ToDense expands s into a freshly allocated Dense matrix.
func (s *Sparse) ToDense() *Dense {
	d := &Dense{r: s.r, c: s.c, data: make([]float64, s.r*s.c)}
	s.Each(func(i, j int, v float64) {
		d.data[i*s.c+j] = v
	})

	return d
}

// Block returns the r×c sub-matrix whose top-left corner is (i, j).
func (s *Sparse) Block(i, j, r, c int) (*Sparse, error) {
	if err := ValidateBlock(s, i, j, r, c); err != nil {
		return nil, matrixErrorf("Sparse.Block", err)
	}
	ts := make([]Triplet, 0, s.NNZ())
	s.Each(func(row, col int, v float64) {
		if row >= i && row < i+r && col >= j && col < j+c {
			ts = append(ts, Triplet{Row: row - i, Col: col - j, Val: v})
		}
	})

	return NewSparse(r, c, ts)
}

// String renders the stored entries as "(row,col)=value" lines.
func (s *Sparse) String() string {
	var out string
	s.Each(func(i, j int, v float64) {
		out += fmt.Sprintf("(%d,%d)=%g\n", i, j, v)
	})

	return out
}
