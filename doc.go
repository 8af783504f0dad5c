// Package reflux computes occultation light curves of bodies seen in
// reflected light.
//
// A planet or moon lit by a distant star shows a day side and a night side
// separated by the terminator. When another body passes in front of it, the
// flux lost depends on how the occultor's disk meets both the limb and the
// terminator. reflux turns that geometry into a solution vector sT: dotted
// with a surface map's spherical-harmonic coefficients it gives the
// reflected flux.
//
// What is inside:
//
//   - matrix: dense and CSR sparse containers, pivoted LU, row products
//   - basis: the change of basis between polynomial and Green's bases
//   - illum: the illumination operator built from the Lambertian dipole
//   - occultation: status codes, collaborator interfaces, the solver, batches
//   - replay: YAML fixture tables that stand in for the geometry collaborators
//
// Pipeline for one observation (b, theta, bo, ro):
//
//	classify ──► P + Q + T ──► · A2 ──► · I(b, theta) ──► · A2Inv ──► sT
//
// The geometry classifier and the primitive integrals P, Q and T are
// supplied by the caller through occultation.Classifier and
// occultation.Integrals.
//
//	go get github.com/katalvlaran/reflux
package reflux
