// Package illum builds the illumination operator of a reflected-light map.
//
// A point on the visible disk is lit in proportion to the dipole
//
//	p = 1.5 · (x·sx + y·sy + z·sz)
//
// where (sx, sy, sz) is the sub-illumination direction encoded by the signed
// projected distance b and the rotation angle theta. Multiplying a
// degree-(ydeg+1) polynomial by p raises its degree by one, so the operator
// maps the N1 = (ydeg+1)² basis into the N2 = (ydeg+2)² basis.
//
// Operators are scratch objects: one per goroutine, refilled on every call.
package illum
