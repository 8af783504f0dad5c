// Package replay drives the occultation solver from recorded fixtures.
//
// The geometry classifier and the primitive integrals live outside this
// module. A replay table stores, per observation, what those collaborators
// returned (status, boundary angles, P/Q/T vectors) together with the
// expected solution vector. Replaying a table re-runs the change of basis
// and illumination weighting against the recorded inputs, which pins the
// solver's output against a reference implementation without linking one.
//
// Tables are YAML documents:
//
//	ydeg: 1
//	tolerance: 1.0e-12
//	cases:
//	  - name: egress
//	    b: 0.5
//	    theta: 0.3
//	    bo: 0.8
//	    ro: 0.2
//	    status: day_occultation
//	    kappa: [0.1, 2.9]
//	    p: [0.1, 0.2, 0.3]
//	    expect: [0.01, 0.02, 0.03, 0.04]
package replay
