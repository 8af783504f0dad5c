package basis

import (
	"fmt"

	"github.com/katalvlaran/reflux/matrix"
)

// ChangeOfBasis is the immutable (A2, A2Inv) pair for one surface-map degree.
type ChangeOfBasis struct {
	ydeg      int
	n1, n2    int
	a2        *matrix.Sparse // N2×N2, inverse of a2InvFull
	a2Inv     *matrix.Sparse // N1×N1, top-left block of a2InvFull
	a2InvFull *matrix.Dense  // N2×N2, as populated by Rule
}

// New builds the change of basis for a surface map of degree ydeg.
//
// Implementation:
//   - Stage 1: populate the dense N2×N2 A2InvFull from Rule(ydeg).
//   - Stage 2: factorize it with pivoted LU and store the inverse as A2.
//   - Stage 3: keep the top-left N1×N1 block of A2InvFull as A2Inv.
//
// Errors:
//   - ErrBadDegree for ydeg < 0.
//   - ErrConstruction (joined with the matrix error, e.g. matrix.ErrSingular)
//     when the factorization fails.
//
// Complexity: O(N2³) time for the factorization, O(N2²) memory.
func New(ydeg int) (*ChangeOfBasis, error) {
	if ydeg < 0 {
		return nil, fmt.Errorf("basis.New(%d): %w", ydeg, ErrBadDegree)
	}
	n1, n2 := Size(ydeg), Size(ydeg+1)

	full, err := matrix.NewDense(n2, n2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	for _, e := range Rule(ydeg) {
		if err = full.Set(e.Row, e.Col, e.Val); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
		}
	}

	lu, err := matrix.Factorize(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	a2, err := matrix.SparseView(lu.Inverse())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}

	// A2 stays N2×N2; A2Inv is reshaped down to N1×N1.
	block, err := full.Block(0, 0, n1, n1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	a2Inv, err := matrix.SparseView(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}

	return &ChangeOfBasis{
		ydeg:      ydeg,
		n1:        n1,
		n2:        n2,
		a2:        a2,
		a2Inv:     a2Inv,
		a2InvFull: full,
	}, nil
}

// Degree returns the surface-map degree ydeg.
func (c *ChangeOfBasis) Degree() int { return c.ydeg }

// N1 returns (ydeg+1)².
func (c *ChangeOfBasis) N1() int { return c.n1 }

// N2 returns (ydeg+2)².
func (c *ChangeOfBasis) N2() int { return c.n2 }

// A2 returns the N2×N2 change of basis. The matrix is shared; do not mutate.
func (c *ChangeOfBasis) A2() *matrix.Sparse { return c.a2 }

// A2Inv returns the N1×N1 truncated inverse change of basis. Shared; read-only.
func (c *ChangeOfBasis) A2Inv() *matrix.Sparse { return c.a2Inv }

// A2InvFull returns a copy of the untruncated N2×N2 matrix built by Rule.
func (c *ChangeOfBasis) A2InvFull() *matrix.Dense {
	return c.a2InvFull.Clone().(*matrix.Dense)
}
