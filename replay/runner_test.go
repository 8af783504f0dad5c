package replay_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/reflux/basis"
	"github.com/katalvlaran/reflux/occultation"
	"github.com/katalvlaran/reflux/replay"
)

func TestRun_Fixture(t *testing.T) {
	tbl, err := replay.Load(fixture)
	require.NoError(t, err)

	sum, err := replay.NewRunner().Run(context.Background(), tbl)
	require.NoError(t, err)

	assert.Equal(t, 0, sum.Failed)
	require.Len(t, sum.Results, 4)
	assert.LessOrEqual(t, sum.MaxDeviation, 1e-12)

	face := sum.Results[0]
	assert.True(t, face.Checked)
	assert.Equal(t, occultation.DayOccultation, face.Status)
	assert.Equal(t, []float64{6, 0, 0, 0}, face.ST)

	assert.InDelta(t, -1.5, sum.Results[1].ST[0], 1e-12)

	miss := sum.Results[2]
	assert.Equal(t, occultation.ZeroFlux, miss.Status)
	assert.Equal(t, []float64{0, 0, 0, 0}, miss.ST)

	broken := sum.Results[3]
	assert.True(t, broken.WantErr)
	require.ErrorIs(t, broken.Err, replay.ErrRecordedGeometry)
	assert.Nil(t, broken.ST)
	assert.True(t, broken.Passed(sum.Tolerance))
}

func TestRun_ReportsDeviation(t *testing.T) {
	tbl, err := replay.Load(fixture)
	require.NoError(t, err)
	tbl.Cases[0].Expect = []float64{6.5}

	core, logs := observer.New(zapcore.WarnLevel)
	sum, err := replay.NewRunner(replay.WithLogger(zap.New(core))).Run(context.Background(), tbl)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Failed)
	assert.InDelta(t, 0.5, sum.MaxDeviation, 1e-15)
	assert.False(t, sum.Results[0].Passed(sum.Tolerance))

	entries := logs.FilterMessage("replay case failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sub_observer_terminator", entries[0].ContextMap()["case"])
}

func TestRun_ZeroTailIsChecked(t *testing.T) {
	tbl := &replay.Table{
		YDeg: 0,
		Cases: []replay.Case{
			{Name: "tail", Status: occultation.DayOccultation, Expect: []float64{0, 0, 0, 1}},
		},
	}

	sum, err := replay.NewRunner().Run(context.Background(), tbl)
	require.NoError(t, err)

	// a nonzero expectation in the zero tail is a deviation
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1.0, sum.Results[0].Deviation)
}

func TestRun_NaNDeviation(t *testing.T) {
	tbl := &replay.Table{
		YDeg: 0,
		Cases: []replay.Case{
			{Name: "nan", B: math.NaN(), Status: occultation.DayOccultation, PInt: []float64{1, 1, 1, 1}, Expect: []float64{0}},
		},
	}

	sum, err := replay.NewRunner().Run(context.Background(), tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Failed)
	assert.True(t, math.IsNaN(sum.MaxDeviation))
}

func TestRun_RecordRegeneratesExpectations(t *testing.T) {
	tbl := &replay.Table{
		YDeg: 2,
		Cases: []replay.Case{
			{Name: "a", B: 0.4, Theta: 0.7, Status: occultation.DayVisible, PInt: ramp(16, 0.1), QInt: ramp(9, -0.2)},
			{Name: "b", B: -0.2, Theta: 2.1, Status: occultation.QuadNightVisible, TInt: ramp(16, 0.3)},
			{Name: "c", Status: occultation.SimpleReflection},
			{Name: "d", Error: "degenerate"},
		},
	}
	r := replay.NewRunner(replay.WithCache(basis.NewCache()))

	first, err := r.Run(context.Background(), tbl)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Failed)
	for _, res := range first.Results {
		assert.False(t, res.Checked)
	}

	require.NoError(t, tbl.Record(first))
	assert.Len(t, tbl.Cases[0].Expect, 16)
	assert.Nil(t, tbl.Cases[3].Expect)

	second, err := r.Run(context.Background(), tbl)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Failed)
	assert.Equal(t, 0.0, second.MaxDeviation)
	for _, res := range second.Results[:3] {
		assert.True(t, res.Checked)
	}
}

func TestRecord_LengthMismatch(t *testing.T) {
	tbl := &replay.Table{Cases: make([]replay.Case, 2)}
	err := tbl.Record(&replay.Summary{Results: make([]replay.Result, 1)})
	require.ErrorIs(t, err, replay.ErrInvalidTable)
}

func TestRun_Cancelled(t *testing.T) {
	tbl, err := replay.Load(fixture)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = replay.NewRunner().Run(ctx, tbl)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidTable(t *testing.T) {
	_, err := replay.NewRunner().Run(context.Background(), &replay.Table{YDeg: -3})
	require.ErrorIs(t, err, replay.ErrInvalidTable)
}

func TestRunnerOptions_PanicOnNil(t *testing.T) {
	assert.Panics(t, func() { replay.WithLogger(nil) })
	assert.Panics(t, func() { replay.WithCache(nil) })
}

func ramp(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = step * float64(i+1)
	}

	return out
}

func TestRun_WorkersAgree(t *testing.T) {
	tbl := &replay.Table{YDeg: 3}
	for i := 0; i < 40; i++ {
		tbl.Cases = append(tbl.Cases, replay.Case{
			Name:   "c",
			B:      -0.9 + 0.045*float64(i),
			Theta:  0.1 * float64(i),
			Status: occultation.Status(4 + i%8),
			PInt:   ramp(25, 0.01*float64(i+1)),
			TInt:   ramp(9, -0.5),
		})
	}
	cache := basis.NewCache()

	serial, err := replay.NewRunner(replay.WithCache(cache), replay.WithWorkers(1)).Run(context.Background(), tbl)
	require.NoError(t, err)
	parallel, err := replay.NewRunner(replay.WithCache(cache), replay.WithWorkers(8)).Run(context.Background(), tbl)
	require.NoError(t, err)

	require.Len(t, parallel.Results, len(serial.Results))
	for i := range serial.Results {
		assert.Equal(t, serial.Results[i].Status, parallel.Results[i].Status, i)
		assert.Equal(t, serial.Results[i].ST, parallel.Results[i].ST, i)
	}
	assert.Equal(t, 1, cache.Len())
}
