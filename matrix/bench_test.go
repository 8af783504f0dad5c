// Package matrix_test provides benchmarks for the factorization and
// row-vector kernels, using deterministic random fill.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/reflux/matrix"
)

// benchSizes are the matrix orders benchmarked; (ydeg+2)² for ydeg 2, 6, 13.
var benchSizes = []int{16, 64, 225}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkV []float64
)

func BenchmarkInverse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := MustDense(b, n, n)
			RandomFill(b, a, 1337)
			for i := 0; i < n; i++ {
				MustSet(b, a, i, i, MustAt(b, a, i, i)+float64(n))
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Inverse(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkRowMulSparse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ts := make([]matrix.Triplet, 0, 3*n)
			for i := 0; i < n; i++ {
				ts = append(ts, matrix.Triplet{Row: i, Col: i, Val: 2})
				ts = append(ts, matrix.Triplet{Row: i, Col: (i * 7) % n, Val: -1})
			}
			s, err := matrix.NewSparse(n, n, ts)
			if err != nil {
				b.Fatal(err)
			}
			x := make([]float64, n)
			for i := range x {
				x[i] = float64(i)
			}
			dst := make([]float64, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err = matrix.RowMulSparse(dst, x, s); err != nil {
					b.Fatal(err)
				}
			}
			sinkV = dst
		})
	}
}
