package basis_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/reflux/basis"
	"github.com/katalvlaran/reflux/matrix"
)

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestRule_DegreeZero(t *testing.T) {
	assert.Equal(t, []matrix.Triplet{
		{Row: 0, Col: 0, Val: 1},
		{Row: 1, Col: 1, Val: 2},
		{Row: 2, Col: 2, Val: 1},
		{Row: 3, Col: 3, Val: 1},
	}, basis.Rule(0))
}

func TestRule_DegreeOneIsDiagonal(t *testing.T) {
	want := []float64{1, 2, 1, 1, 3, -3, 2, 3, 1}
	got := basis.Rule(1)
	require.Len(t, got, len(want))
	for n, e := range got {
		assert.Equal(t, matrix.Triplet{Row: n, Col: n, Val: want[n]}, e)
	}
}

// TestRule_OffDiagonalCouplings pins the odd-term couplings that first
// appear at l = 3.
func TestRule_OffDiagonalCouplings(t *testing.T) {
	cob, err := basis.New(2)
	require.NoError(t, err)
	full := cob.A2InvFull()

	// column 10: (l, m) = (3, -2), general case with mu = 5
	assert.Equal(t, 1.0, at(t, full, 2, 10))
	assert.Equal(t, -1.0, at(t, full, 14, 10))
	assert.Equal(t, -4.0, at(t, full, 10, 10))

	// column 14: (l, m) = (3, 2), mu = 1 with odd l
	assert.Equal(t, -1.0, at(t, full, 2, 14))
	assert.Equal(t, 1.0, at(t, full, 10, 14))
	assert.Equal(t, 4.0, at(t, full, 14, 14))

	// column 12: (l, m) = (3, 0), mu = 3
	assert.Equal(t, -3.0, at(t, full, 12, 12))
}

func TestRule_EvenMu1LandsOffDiagonal(t *testing.T) {
	cob, err := basis.New(3)
	require.NoError(t, err)
	// (l, m) = (4, 3) is column 23 and writes row l²+3 = 19
	assert.Equal(t, 3.0, at(t, cob.A2InvFull(), 19, 23))
	assert.Equal(t, 0.0, at(t, cob.A2InvFull(), 23, 23))
}

func TestNew_Dimensions(t *testing.T) {
	for ydeg := 0; ydeg <= 4; ydeg++ {
		cob, err := basis.New(ydeg)
		require.NoError(t, err)
		assert.Equal(t, ydeg, cob.Degree())
		assert.Equal(t, (ydeg+1)*(ydeg+1), cob.N1())
		assert.Equal(t, (ydeg+2)*(ydeg+2), cob.N2())
		assert.Equal(t, cob.N2(), cob.A2().Rows())
		assert.Equal(t, cob.N2(), cob.A2().Cols())
		assert.Equal(t, cob.N1(), cob.A2Inv().Rows())
		assert.Equal(t, cob.N1(), cob.A2Inv().Cols())
	}
}

func TestNew_BadDegree(t *testing.T) {
	_, err := basis.New(-1)
	assert.ErrorIs(t, err, basis.ErrBadDegree)
}

// TestNew_InverseIdentity checks A2 · A2InvFull ≈ I on the full N2 space and
// cross-checks A2 against gonum's inverse.
func TestNew_InverseIdentity(t *testing.T) {
	for ydeg := 0; ydeg <= 8; ydeg++ {
		t.Run(fmt.Sprintf("ydeg=%d", ydeg), func(t *testing.T) {
			cob, err := basis.New(ydeg)
			require.NoError(t, err)
			full := cob.A2InvFull()
			n2 := cob.N2()

			prod, err := matrix.Mul(cob.A2(), full)
			require.NoError(t, err)
			for i := 0; i < n2; i++ {
				for j := 0; j < n2; j++ {
					want := 0.0
					if i == j {
						want = 1
					}
					assert.InDelta(t, want, at(t, prod, i, j), 1e-9, "[%d,%d]", i, j)
				}
			}

			ref := mat.NewDense(n2, n2, nil)
			for i := 0; i < n2; i++ {
				copy(ref.RawRowView(i), full.RawRow(i))
			}
			var inv mat.Dense
			require.NoError(t, inv.Inverse(ref))
			for i := 0; i < n2; i++ {
				for j := 0; j < n2; j++ {
					assert.InDelta(t, inv.At(i, j), at(t, cob.A2(), i, j), 1e-9, "[%d,%d]", i, j)
				}
			}
		})
	}
}

// TestNew_A2InvIsTruncation verifies that A2Inv is the top-left block of the
// populated matrix, not a block of the inverse of A2.
func TestNew_A2InvIsTruncation(t *testing.T) {
	for ydeg := 0; ydeg <= 5; ydeg++ {
		cob, err := basis.New(ydeg)
		require.NoError(t, err)
		full := cob.A2InvFull()
		for i := 0; i < cob.N1(); i++ {
			for j := 0; j < cob.N1(); j++ {
				assert.Equal(t, at(t, full, i, j), at(t, cob.A2Inv(), i, j), "ydeg=%d [%d,%d]", ydeg, i, j)
			}
		}
	}
}

func TestNew_DegreeZeroBoundary(t *testing.T) {
	cob, err := basis.New(0)
	require.NoError(t, err)
	assert.Equal(t, 1, cob.N1())
	assert.Equal(t, 4, cob.N2())
	assert.Equal(t, 0.5, at(t, cob.A2(), 1, 1))
	assert.Equal(t, 1.0, at(t, cob.A2Inv(), 0, 0))
}

func TestNew_A2InvFullIsCopy(t *testing.T) {
	cob, err := basis.New(1)
	require.NoError(t, err)
	full := cob.A2InvFull()
	require.NoError(t, full.Set(0, 0, 99))
	assert.Equal(t, 1.0, at(t, cob.A2InvFull(), 0, 0))
}

func TestCache_SingleConstruction(t *testing.T) {
	c := basis.NewCache()
	const workers = 16
	got := make([]*basis.ChangeOfBasis, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cob, err := c.Get(3)
			assert.NoError(t, err)
			got[i] = cob
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
	assert.Equal(t, 1, c.Len())

	_, err := c.Get(-2)
	assert.ErrorIs(t, err, basis.ErrBadDegree)
	assert.Equal(t, 2, c.Len())
}
