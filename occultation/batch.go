package occultation

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult holds the solutions of a Batch call: row i of ST (length
// Cols) belongs to observation i.
type BatchResult[F any] struct {
	Rows   int
	Cols   int
	ST     []F      // row-major Rows×Cols
	Status []Status // one per observation
}

// Row returns the solution vector of observation i (aliases ST).
func (r *BatchResult[F]) Row(i int) []F {
	return r.ST[i*r.Cols : (i+1)*r.Cols]
}

// Batch solves every observation and returns a len(obs)×N2 result.
//
// Behavior highlights:
//   - workers <= 0 means runtime.GOMAXPROCS(0); never more workers than
//     observations.
//   - Observations are striped over workers; each worker owns one Workspace.
//   - The first error (classifier error or ctx cancellation) stops all
//     workers and is returned unmodified; the partial result is discarded.
//   - Output is identical to calling Compute sequentially.
func (s *Solver[F]) Batch(ctx context.Context, obs []Observation[F], workers int) (*BatchResult[F], error) {
	n2 := s.cob.N2()
	res := &BatchResult[F]{
		Rows:   len(obs),
		Cols:   n2,
		ST:     make([]F, len(obs)*n2),
		Status: make([]Status, len(obs)),
	}
	if len(obs) == 0 {
		return res, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(obs))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			ws := s.NewWorkspace()
			for i := w; i < len(obs); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				st, err := s.ComputeWith(ws, obs[i])
				if err != nil {
					return err
				}
				res.Status[i] = st
				copy(res.Row(i), ws.sT)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Debug("batch aborted", zap.Int("observations", len(obs)), zap.Error(err))
		return nil, err
	}
	s.log.Debug("batch done",
		zap.Int("observations", len(obs)),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}
