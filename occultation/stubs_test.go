package occultation_test

import (
	"math"
	"sync"
	"testing"

	"github.com/katalvlaran/reflux/occultation"
)

// fixedGeometry returns a classifier that always reports g.
func fixedGeometry(g occultation.Geometry[float64]) occultation.ClassifierFunc[float64] {
	return func(_, _, _, _ float64) (occultation.Geometry[float64], error) {
		return g, nil
	}
}

// generalGeometry is a boundary-crossing configuration with kappa = [0, π].
func generalGeometry() occultation.Geometry[float64] {
	return occultation.Geometry[float64]{
		Status: occultation.DayOccultation,
		Kappa:  []float64{0, math.Pi},
		Lam:    []float64{},
		Xi:     []float64{},
	}
}

// rampIntegrals fills P, Q and T with fixed deterministic sequences.
// It is stateless and safe for concurrent use.
type rampIntegrals struct{}

func (rampIntegrals) P(dst []float64, _ int, _, _ float64, _ []float64) {
	for i := range dst {
		dst[i] = 0.1 * float64(i+1)
	}
}

func (rampIntegrals) Q(dst []float64, _ int, _ []float64) {
	for i := range dst {
		dst[i] = 0.05 * float64(i) * math.Pow(-1, float64(i))
	}
}

func (rampIntegrals) T(dst []float64, _ int, _, _ float64, _ []float64) {
	for i := range dst {
		dst[i] = 1 / float64(i+2)
	}
}

// rawSum is P + Q + T of rampIntegrals for n terms.
func rawSum(n int) []float64 {
	p, q, tt := make([]float64, n), make([]float64, n), make([]float64, n)
	rampIntegrals{}.P(p, 0, 0, 0, nil)
	rampIntegrals{}.Q(q, 0, nil)
	rampIntegrals{}.T(tt, 0, 0, 0, nil)
	out := make([]float64, n)
	for i := range out {
		out[i] = p[i] + q[i] + tt[i]
	}

	return out
}

// obsIntegrals depends on the observation so batch rows differ.
type obsIntegrals struct{}

func (obsIntegrals) P(dst []float64, deg int, bo, ro float64, kappa []float64) {
	for i := range dst {
		dst[i] = bo*float64(i) + ro + float64(len(kappa)) + float64(deg)
	}
}

func (obsIntegrals) Q(dst []float64, _ int, lam []float64) {
	for i := range dst {
		dst[i] = float64(len(lam)) * 0.5
	}
}

func (obsIntegrals) T(dst []float64, _ int, b, theta float64, _ []float64) {
	for i := range dst {
		dst[i] = b - theta*float64(i%3)
	}
}

// call records one invocation of a recordingIntegrals method.
type call struct {
	name string
	deg  int
	n    int
	args []float64
}

// recordingIntegrals records calls and fills dst with zeros.
type recordingIntegrals struct {
	mu    sync.Mutex
	calls []call
}

func (r *recordingIntegrals) record(c call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func (r *recordingIntegrals) P(dst []float64, deg int, bo, ro float64, kappa []float64) {
	clear(dst)
	r.record(call{name: "P", deg: deg, n: len(dst), args: append([]float64{bo, ro}, kappa...)})
}

func (r *recordingIntegrals) Q(dst []float64, deg int, lam []float64) {
	clear(dst)
	r.record(call{name: "Q", deg: deg, n: len(dst), args: append([]float64(nil), lam...)})
}

func (r *recordingIntegrals) T(dst []float64, deg int, b, theta float64, xi []float64) {
	clear(dst)
	r.record(call{name: "T", deg: deg, n: len(dst), args: append([]float64{b, theta}, xi...)})
}

// failingIntegrals fails the test if any integral is evaluated.
type failingIntegrals struct{ t *testing.T }

func (f failingIntegrals) P([]float64, int, float64, float64, []float64) {
	f.t.Errorf("P evaluated for a trivial configuration")
}

func (f failingIntegrals) Q([]float64, int, []float64) {
	f.t.Errorf("Q evaluated for a trivial configuration")
}

func (f failingIntegrals) T([]float64, int, float64, float64, []float64) {
	f.t.Errorf("T evaluated for a trivial configuration")
}
