// Package occultation computes the reflected-light occultation solution
// vector sT for a spherical-harmonic surface map.
//
// 🚀 What is sT?
//
//	For one observation (b, theta, bo, ro), the dot product of sT with the
//	map's Green's-basis coefficients is the flux removed by the occultor from
//	the illuminated part of the disk. This package handles the general case
//	where the occultor crosses the day/night terminator; configurations that
//	simpler algorithms cover (no overlap, plain occultation, plain
//	reflection) yield an all-zero sT.
//
// ✨ Pipeline per observation:
//
//  1. Classify the geometry (external Classifier): status code plus boundary
//     limits kappa, lam, xi.
//  2. Trivial status → zero vector, done.
//  3. Sum the three primitive-integral families P + Q + T at degree ydeg+1
//     (external Integrals).
//  4. Fill the illumination operator I for (b, theta).
//  5. sT = (P + Q + T) · A2 · I · A2Inv.
//
// ⚙️ Concurrency:
//
//	A Solver is immutable and safe for concurrent use: the change of basis is
//	shared read-only and every call works in a Workspace. Compute checks one
//	out of an internal pool; ComputeWith lets the caller own it; Batch fans
//	observations out over goroutines, one Workspace each.
//
// ⚙️ Usage:
//
//	s, err := occultation.New[float64](ydeg, classifier, integrals)
//	if err != nil {
//	  // errors.Is(err, occultation.ErrConstruction)
//	}
//	sT, err := s.Compute(b, theta, bo, ro)
package occultation
