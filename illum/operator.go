package illum

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/reflux/matrix"
)

// ErrBadDegree is returned for a negative surface-map degree.
var ErrBadDegree = errors.New("illum: degree must be >= 0")

// Normalization of reflected-light maps: a uniform unit-albedo map lit
// face-on integrates to the same flux as an emitting unit map.
const Normalization = 1.5

// Dipole returns the four Green's-basis coefficients [1, x, z, y] of the
// illumination dipole for impact parameter b and rotation angle theta.
// b is expected in [-1, 1]; values outside produce NaN, which propagates.
func Dipole[F matrix.Float](b, theta F) [4]F {
	y0 := F(math.Sqrt(float64(1 - b*b)))
	sin, cos := math.Sincos(float64(theta))
	x := -y0 * F(sin)
	y := y0 * F(cos)
	z := -b

	return [4]F{0, Normalization * x, Normalization * z, Normalization * y}
}

// Operator is the dense N2×N1 illumination matrix I for one degree.
// It is not safe for concurrent use; give each goroutine its own.
type Operator[F matrix.Float] struct {
	ydeg       int
	rows, cols int // N2, N1
	data       []F // row-major
}

// NewOperator allocates a zeroed operator for a surface map of degree ydeg.
func NewOperator[F matrix.Float](ydeg int) (*Operator[F], error) {
	if ydeg < 0 {
		return nil, fmt.Errorf("illum.NewOperator(%d): %w", ydeg, ErrBadDegree)
	}
	rows, cols := (ydeg+2)*(ydeg+2), (ydeg+1)*(ydeg+1)

	return &Operator[F]{ydeg: ydeg, rows: rows, cols: cols, data: make([]F, rows*cols)}, nil
}

// Degree returns ydeg.
func (o *Operator[F]) Degree() int { return o.ydeg }

// Rows returns N2.
func (o *Operator[F]) Rows() int { return o.rows }

// Cols returns N1.
func (o *Operator[F]) Cols() int { return o.cols }

// Data exposes the row-major backing slice. It is overwritten by Fill.
func (o *Operator[F]) Data() []F { return o.data }

// At returns I[i, j].
func (o *Operator[F]) At(i, j int) (F, error) {
	if i < 0 || i >= o.rows || j < 0 || j >= o.cols {
		return 0, fmt.Errorf("Operator.At(%d,%d): %w", i, j, matrix.ErrOutOfRange)
	}

	return o.data[i*o.cols+j], nil
}

// add accumulates v into I[i, j].
func (o *Operator[F]) add(i, j int, v F) {
	o.data[i*o.cols+j] += v
}

// Fill zeroes the operator and repopulates it for the illumination (b, theta).
//
// Column n1 is the product of the n1-th Green's basis term (l1, m1) with each
// of the four dipole terms (l2, m2). The product lands at
// n = l² + l + m1 + m2, l = l1 + l2, except when an odd term (l1+m1 odd)
// meets an odd dipole term (l2+m2 odd): that product has no single-index
// closed form and is spread over n-4l+2 (+), n-2 (-) and n+2 (-).
func (o *Operator[F]) Fill(b, theta F) {
	clear(o.data)
	p := Dipole(b, theta)

	var l1, m1, l2, m2, l, n, n1, n2 int
	var odd1 bool
	for l1 = 0; l1 < o.ydeg+1; l1++ {
		for m1 = -l1; m1 < l1+1; m1++ {
			odd1 = !isEven(l1 + m1)
			n2 = 0
			for l2 = 0; l2 < 2; l2++ {
				for m2 = -l2; m2 < l2+1; m2++ {
					l = l1 + l2
					n = l*l + l + m1 + m2
					if odd1 && !isEven(l2+m2) {
						o.add(n-4*l+2, n1, p[n2])
						o.add(n-2, n1, -p[n2])
						o.add(n+2, n1, -p[n2])
					} else {
						o.add(n, n1, p[n2])
					}
					n2++
				}
			}
			n1++
		}
	}
}

// RowMul computes dst = x · I with len(x) == N2 and len(dst) == N1.
// dst must not alias x.
func (o *Operator[F]) RowMul(dst, x []F) error {
	if err := matrix.ValidateVecLen(x, o.rows); err != nil {
		return fmt.Errorf("Operator.RowMul: %w", err)
	}
	if err := matrix.ValidateVecLen(dst, o.cols); err != nil {
		return fmt.Errorf("Operator.RowMul: %w", err)
	}
	clear(dst)
	var i, j int
	var xi F
	for i = 0; i < o.rows; i++ {
		xi = x[i]
		row := o.data[i*o.cols : (i+1)*o.cols]
		for j = 0; j < o.cols; j++ {
			dst[j] += xi * row[j]
		}
	}

	return nil
}

func isEven(n int) bool { return n%2 == 0 }
