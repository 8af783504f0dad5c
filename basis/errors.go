package basis

import "errors"

var (
	// ErrBadDegree is returned for a negative surface-map degree.
	ErrBadDegree = errors.New("basis: degree must be >= 0")

	// ErrConstruction signals that the change-of-basis matrix could not be
	// factorized. The matrix is invertible for every valid degree, so this
	// indicates an internal invariant violation rather than a user error.
	ErrConstruction = errors.New("basis: error computing the change of basis matrix A2")
)
