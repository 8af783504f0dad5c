package replay

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/reflux/basis"
	"github.com/katalvlaran/reflux/occultation"
)

// Result is the outcome of replaying one case.
type Result struct {
	Name   string
	Status occultation.Status
	ST     []float64
	// Deviation is max |sT - expect| over all N2 terms, expect zero padded.
	// Only meaningful when Checked.
	Deviation float64
	Checked   bool
	WantErr   bool
	Err       error
}

// Passed reports whether the case matched its recording within tol.
func (r *Result) Passed(tol float64) bool {
	if r.WantErr {
		return r.Err != nil
	}
	if r.Err != nil {
		return false
	}

	return !r.Checked || r.Deviation <= tol
}

// Summary aggregates a table run.
type Summary struct {
	YDeg         int
	Tolerance    float64
	Results      []Result
	MaxDeviation float64
	Failed       int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger; it is passed on to every solver.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("replay: WithLogger: nil logger")
	}

	return func(r *Runner) { r.log = l }
}

// WithWorkers bounds the number of cases solved concurrently. n <= 0 means
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithCache resolves the change of basis through c.
func WithCache(c *basis.Cache) Option {
	if c == nil {
		panic("replay: WithCache: nil cache")
	}

	return func(r *Runner) { r.cache = c }
}

// Runner replays tables. The zero value is not usable; call NewRunner.
type Runner struct {
	log     *zap.Logger
	cache   *basis.Cache
	workers int
}

// NewRunner returns a Runner configured by opts. Unset options fall back to
// zap.NewNop() and a private cache; workers default to GOMAXPROCS.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = basis.NewCache()
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}

	return r
}

// Run solves every case of tbl against a single shared change of basis.
//
// Per-case failures (recorded geometry errors, deviations) are reported in
// the Summary. The returned error is reserved for an invalid table, a basis
// that cannot be built, or ctx cancellation.
func (r *Runner) Run(ctx context.Context, tbl *Table) (*Summary, error) {
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	cob, err := r.cache.Get(tbl.YDeg)
	if err != nil {
		return nil, fmt.Errorf("replay: basis for ydeg %d: %w", tbl.YDeg, err)
	}

	sum := &Summary{
		YDeg:      tbl.YDeg,
		Tolerance: tbl.Tol(),
		Results:   make([]Result, len(tbl.Cases)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range tbl.Cases {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return r.runCase(cob, &tbl.Cases[i], &sum.Results[i])
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	for i := range sum.Results {
		res := &sum.Results[i]
		if res.Checked && (res.Deviation > sum.MaxDeviation || math.IsNaN(res.Deviation)) {
			sum.MaxDeviation = res.Deviation
		}
		if !res.Passed(sum.Tolerance) {
			sum.Failed++
			r.log.Warn("replay case failed",
				zap.String("case", res.Name),
				zap.Stringer("status", res.Status),
				zap.Float64("deviation", res.Deviation),
				zap.Error(res.Err),
			)
			continue
		}
		r.log.Debug("replay case passed",
			zap.String("case", res.Name),
			zap.Stringer("status", res.Status),
			zap.Float64("deviation", res.Deviation),
		)
	}

	r.log.Info("replay done",
		zap.Int("ydeg", tbl.YDeg),
		zap.Int("cases", len(tbl.Cases)),
		zap.Int("failed", sum.Failed),
		zap.Float64("max_deviation", sum.MaxDeviation),
	)

	return sum, nil
}

// runCase solves c with a solver whose collaborators are c itself.
func (r *Runner) runCase(cob *basis.ChangeOfBasis, c *Case, res *Result) error {
	s, err := occultation.New[float64](cob.Degree(), c, c,
		occultation.WithBasis(cob), occultation.WithLogger(r.log))
	if err != nil {
		return fmt.Errorf("replay: case %q: %w", c.Name, err)
	}
	ws := s.NewWorkspace()

	res.Name = c.Name
	res.WantErr = c.Error != ""
	res.Status, res.Err = s.ComputeWith(ws, c.Observation())
	if res.Err != nil {
		return nil
	}
	res.ST = ws.ST()
	if c.Expect != nil {
		res.Checked = true
		res.Deviation = deviation(res.ST, c.Expect)
	}

	return nil
}

// Record copies every successful result into the matching case's Expect,
// regenerating a table's reference values.
func (t *Table) Record(sum *Summary) error {
	if len(sum.Results) != len(t.Cases) {
		return fmt.Errorf("%w: %d results for %d cases", ErrInvalidTable, len(sum.Results), len(t.Cases))
	}
	for i := range t.Cases {
		res := &sum.Results[i]
		if res.Err != nil {
			if !errors.Is(res.Err, ErrRecordedGeometry) {
				return fmt.Errorf("replay: case %q: %w", res.Name, res.Err)
			}
			continue
		}
		t.Cases[i].Expect = append([]float64(nil), res.ST...)
	}

	return nil
}

// deviation returns max |got - want| with want zero padded to len(got).
// NaN anywhere yields NaN.
func deviation(got, want []float64) float64 {
	var dev float64
	for i, g := range got {
		var w float64
		if i < len(want) {
			w = want[i]
		}
		d := math.Abs(g - w)
		if math.IsNaN(d) {
			return d
		}
		if d > dev {
			dev = d
		}
	}

	return dev
}
