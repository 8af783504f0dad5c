package occultation

import (
	"errors"

	"github.com/katalvlaran/reflux/basis"
)

var (
	// ErrNilCollaborator is returned by New when the classifier or the
	// integrals are nil.
	ErrNilCollaborator = errors.New("occultation: nil classifier or integrals")

	// ErrDegreeMismatch is returned when a supplied change of basis or
	// workspace was built for a different degree than the solver.
	ErrDegreeMismatch = errors.New("occultation: degree mismatch")

	// ErrUnknownStatus is returned when parsing an unrecognized status name.
	ErrUnknownStatus = errors.New("occultation: unknown status")
)

// ErrConstruction aliases basis.ErrConstruction so callers of New can match
// the construction failure without importing basis.
var ErrConstruction = basis.ErrConstruction

// ErrBadDegree aliases basis.ErrBadDegree.
var ErrBadDegree = basis.ErrBadDegree
