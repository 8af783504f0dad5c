// Package basis builds the fixed change of basis used by the reflected-light
// occultation solver.
//
// For a surface map of degree ydeg the solver works in two polynomial bases:
// the degree-(ydeg+1) basis of size N1 = (ydeg+1)² and the degree-(ydeg+2)
// basis of size N2 = (ydeg+2)², one degree higher so it can absorb the
// degree-1 illumination dipole.
//
// ✨ What New(ydeg) produces:
//
//   - A2InvFull: the dense N2×N2 matrix populated entry by entry from a closed
//     polynomial identity (see Rule). Every coefficient is exact.
//   - A2: its inverse, computed once by pivoted LU and stored sparse.
//   - A2Inv: the top-left N1×N1 block of A2InvFull (a truncation of the
//     original matrix, never of the inverse).
//
// Construction is the only superlinear step in the solver. A ChangeOfBasis is
// immutable after New returns; share one per degree, for example through a
// Cache, across any number of goroutines.
//
// ⚙️ Usage:
//
//	cob, err := basis.New(3)
//	if err != nil {
//	  // errors.Is(err, basis.ErrConstruction)
//	}
//	fmt.Println(cob.N1(), cob.N2(), cob.A2().NNZ())
package basis
