package occultation

import (
	"github.com/katalvlaran/reflux/illum"
	"github.com/katalvlaran/reflux/matrix"
)

// Workspace holds the per-call mutable buffers of one solver session:
// the three primitive integrals, the intermediate products, the
// illumination operator and the output sT. A Workspace must not be used by
// two goroutines at once.
type Workspace[F matrix.Float] struct {
	ydeg   int
	n1, n2 int

	p, q, t []F // primitive integrals, N2 each
	raw     []F // P + Q + T, N2
	greens  []F // raw · A2, N2
	lit     []F // greens · I, N1
	sT      []F // output, N2

	op *illum.Operator[F]

	status   Status
	costheta F
	sintheta F
}

func newWorkspace[F matrix.Float](ydeg int) *Workspace[F] {
	n1, n2 := (ydeg+1)*(ydeg+1), (ydeg+2)*(ydeg+2)
	op, _ := illum.NewOperator[F](ydeg) // ydeg validated by the solver
	buf := make([]F, 6*n2+n1)

	return &Workspace[F]{
		ydeg:   ydeg,
		n1:     n1,
		n2:     n2,
		p:      buf[0*n2 : 1*n2 : 1*n2],
		q:      buf[1*n2 : 2*n2 : 2*n2],
		t:      buf[2*n2 : 3*n2 : 3*n2],
		raw:    buf[3*n2 : 4*n2 : 4*n2],
		greens: buf[4*n2 : 5*n2 : 5*n2],
		sT:     buf[5*n2 : 6*n2 : 6*n2],
		lit:    buf[6*n2:],
		op:     op,
	}
}

// Degree returns the surface-map degree the workspace was sized for.
func (w *Workspace[F]) Degree() int { return w.ydeg }

// ST returns the solution vector of the last successful call, length N2.
// The slice aliases the workspace and is overwritten by the next call.
func (w *Workspace[F]) ST() []F { return w.sT }

// Status returns the geometry status of the last successful call.
func (w *Workspace[F]) Status() Status { return w.status }

// Trig returns cos(theta) and sin(theta) as recomputed by the last
// general-case call.
func (w *Workspace[F]) Trig() (cos, sin F) { return w.costheta, w.sintheta }

// Illumination returns the operator filled by the last general-case call.
func (w *Workspace[F]) Illumination() *illum.Operator[F] { return w.op }

// Integrals returns the P, Q and T vectors of the last general-case call.
func (w *Workspace[F]) Integrals() (p, q, t []F) { return w.p, w.q, w.t }
