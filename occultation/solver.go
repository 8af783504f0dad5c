package occultation

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/reflux/basis"
	"github.com/katalvlaran/reflux/matrix"
)

// Solver computes reflected-light occultation solution vectors for a fixed
// surface-map degree. It is immutable after New and safe for concurrent use
// as long as its Classifier and Integrals are.
type Solver[F matrix.Float] struct {
	ydeg      int
	cob       *basis.ChangeOfBasis
	classify  Classifier[F]
	integrals Integrals[F]
	log       *zap.Logger
	pool      sync.Pool // *Workspace[F]
}

// New builds a solver for degree ydeg.
//
// The change of basis comes from WithBasis, else from WithCache, else it is
// built here. This is the only expensive step.
//
// Errors:
//   - ErrBadDegree for ydeg < 0.
//   - ErrNilCollaborator for a nil classifier or integrals.
//   - ErrDegreeMismatch when WithBasis supplies a different degree.
//   - ErrConstruction when the change of basis cannot be factorized.
func New[F matrix.Float](ydeg int, classifier Classifier[F], integrals Integrals[F], opts ...Option) (*Solver[F], error) {
	if ydeg < 0 {
		return nil, fmt.Errorf("occultation.New(%d): %w", ydeg, ErrBadDegree)
	}
	if classifier == nil || integrals == nil {
		return nil, ErrNilCollaborator
	}
	o := gatherOptions(opts)

	cob, err := resolveBasis(ydeg, o)
	if err != nil {
		return nil, err
	}

	s := &Solver[F]{
		ydeg:      ydeg,
		cob:       cob,
		classify:  classifier,
		integrals: integrals,
		log:       o.log,
	}
	s.pool.New = func() any { return newWorkspace[F](ydeg) }

	s.log.Debug("reflected occultation solver ready",
		zap.Int("ydeg", ydeg),
		zap.Int("n1", cob.N1()),
		zap.Int("n2", cob.N2()),
		zap.Int("a2_nnz", cob.A2().NNZ()),
		zap.Int("a2inv_nnz", cob.A2Inv().NNZ()),
	)

	return s, nil
}

func resolveBasis(ydeg int, o options) (*basis.ChangeOfBasis, error) {
	switch {
	case o.cob != nil:
		if o.cob.Degree() != ydeg {
			return nil, fmt.Errorf("basis degree %d, solver degree %d: %w", o.cob.Degree(), ydeg, ErrDegreeMismatch)
		}
		return o.cob, nil
	case o.cache != nil:
		return o.cache.Get(ydeg)
	default:
		return basis.New(ydeg)
	}
}

// Degree returns ydeg.
func (s *Solver[F]) Degree() int { return s.ydeg }

// Basis returns the shared change of basis.
func (s *Solver[F]) Basis() *basis.ChangeOfBasis { return s.cob }

// NewWorkspace allocates scratch buffers sized for this solver.
func (s *Solver[F]) NewWorkspace() *Workspace[F] { return newWorkspace[F](s.ydeg) }

// Compute returns a freshly allocated sT of length (ydeg+2)² for one
// observation, using a pooled workspace. Classifier errors are returned
// unmodified.
func (s *Solver[F]) Compute(b, theta, bo, ro F) ([]F, error) {
	ws := s.pool.Get().(*Workspace[F])
	defer s.pool.Put(ws)

	if _, err := s.ComputeWith(ws, Observation[F]{B: b, Theta: theta, Bo: bo, Ro: ro}); err != nil {
		return nil, err
	}

	return append([]F(nil), ws.sT...), nil
}

// ComputeWith runs one observation in the caller-owned workspace ws and
// returns the geometry status. On success ws.ST() holds the solution; on
// error ws.ST() keeps its previous contents.
//
// In the general case the first N1 entries of sT hold
// (P + Q + T) · A2 · I · A2Inv and the trailing N2-N1 entries are zero.
func (s *Solver[F]) ComputeWith(ws *Workspace[F], obs Observation[F]) (Status, error) {
	if ws == nil || ws.ydeg != s.ydeg {
		return 0, fmt.Errorf("occultation: workspace: %w", ErrDegreeMismatch)
	}

	g, err := s.classify.Classify(obs.B, obs.Theta, obs.Bo, obs.Ro)
	if err != nil {
		return 0, err
	}

	if g.Status.Trivial() {
		// handled by the emitted-light solver or no overlap at all
		clear(ws.sT)
		ws.status = g.Status
		return g.Status, nil
	}

	// Recomputed rather than taken from g: the classifier may report them
	// under its own sign convention.
	sin, cos := math.Sincos(float64(obs.Theta))
	ws.costheta, ws.sintheta = F(cos), F(sin)

	deg := s.ydeg + 1
	s.integrals.P(ws.p, deg, obs.Bo, obs.Ro, g.Kappa)
	s.integrals.Q(ws.q, deg, g.Lam)
	s.integrals.T(ws.t, deg, obs.B, obs.Theta, g.Xi)
	for i := range ws.raw {
		ws.raw[i] = ws.p[i] + ws.q[i] + ws.t[i]
	}

	// Weight by the illumination; I maps Green's to Green's.
	ws.op.Fill(obs.B, obs.Theta)
	if err = matrix.RowMulSparse(ws.greens, ws.raw, s.cob.A2()); err != nil {
		return 0, fmt.Errorf("occultation: sT·A2: %w", err)
	}
	if err = ws.op.RowMul(ws.lit, ws.greens); err != nil {
		return 0, fmt.Errorf("occultation: sT·I: %w", err)
	}
	if err = matrix.RowMulSparse(ws.sT[:ws.n1], ws.lit, s.cob.A2Inv()); err != nil {
		return 0, fmt.Errorf("occultation: sT·A2Inv: %w", err)
	}
	clear(ws.sT[ws.n1:])
	ws.status = g.Status

	return g.Status, nil
}
