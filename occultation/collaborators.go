package occultation

import "github.com/katalvlaran/reflux/matrix"

// Observation is one (b, theta, bo, ro) sample.
//
//   - B: signed projected distance of the sub-illumination point, in [-1, 1].
//   - Theta: rotation of the terminator, radians.
//   - Bo: impact parameter of the occultor.
//   - Ro: radius of the occultor, in units of the occulted body's radius.
type Observation[F matrix.Float] struct {
	B, Theta, Bo, Ro F
}

// Geometry is the Classifier's result record: the configuration status and
// the boundary integration limits for the primitive integrals.
type Geometry[F matrix.Float] struct {
	Status   Status
	Kappa    []F // occultor-boundary angles, consumed by Integrals.P
	Lam      []F // limb-boundary angles, consumed by Integrals.Q
	Xi       []F // terminator-boundary angles, consumed by Integrals.T
	CosTheta F
	SinTheta F
}

// Classifier finds the intersections of the occultor, the terminator and the
// limb. Errors it returns (e.g. unsupported configurations) are passed
// through Solver calls unmodified.
type Classifier[F matrix.Float] interface {
	Classify(b, theta, bo, ro F) (Geometry[F], error)
}

// ClassifierFunc adapts an ordinary function to the Classifier interface.
type ClassifierFunc[F matrix.Float] func(b, theta, bo, ro F) (Geometry[F], error)

// Classify calls f(b, theta, bo, ro).
func (f ClassifierFunc[F]) Classify(b, theta, bo, ro F) (Geometry[F], error) {
	return f(b, theta, bo, ro)
}

// Integrals evaluates the three primitive-integral families at degree deg.
// Each method overwrites every element of dst, which has length (deg+1)².
// Implementations must be safe for concurrent use if the Solver is shared.
type Integrals[F matrix.Float] interface {
	// P integrates along the occultor boundary.
	P(dst []F, deg int, bo, ro F, kappa []F)
	// Q integrates along the limb of the occulted body.
	Q(dst []F, deg int, lam []F)
	// T integrates along the terminator.
	T(dst []F, deg int, b, theta F, xi []F)
}
