package occultation

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/reflux/matrix"
)

// Flux dots sT with Green's-basis map coefficients. coeffs may be shorter
// than sT (e.g. N1 coefficients against an N2 vector); the missing entries
// count as zero.
func Flux(sT, coeffs []float64) (float64, error) {
	if len(coeffs) > len(sT) {
		return 0, fmt.Errorf("occultation.Flux: %d coefficients for %d terms: %w", len(coeffs), len(sT), matrix.ErrDimensionMismatch)
	}

	return floats.Dot(sT[:len(coeffs)], coeffs), nil
}
