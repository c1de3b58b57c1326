package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmplr/xmplr/synth/internal/testutil"
)

func TestRateProcess_Next_ScaledExponential(t *testing.T) {
	src := testutil.NewScriptedSource(0, 0.5, 0.75)
	rp, err := NewRateProcess(10, src)
	require.NoError(t, err)

	v, err := rp.Next()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = rp.Next()
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Ln2, v, 1e-12)

	v, err = rp.Next()
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Log(4), v, 1e-12)
}

func TestRateProcess_Next_MeanMatchesRate(t *testing.T) {
	rp, err := NewRateProcess(3, NewFloat64Source(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	n := 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		v, err := rp.Next()
		require.NoError(t, err)
		sum += v
	}
	testutil.AssertFloat64Equal(t, "exponential mean", 3, sum/float64(n), 0.03)
}

func TestRateProcess_Next_DrawOutOfRange(t *testing.T) {
	for _, u := range []float64{1, 1.5, -0.1, math.NaN()} {
		rp, err := NewRateProcess(1, testutil.NewScriptedSource(u))
		require.NoError(t, err)
		_, err = rp.Next()
		assert.ErrorIs(t, err, ErrDrawOutOfRange, "u=%v", u)
	}
}

func TestNewRateProcess_InvalidRate(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewRateProcess(r, testutil.NewScriptedSource(0.5))
		assert.ErrorIs(t, err, ErrInvalidArgument, "rate=%v", r)
	}
}

func TestIntegrateOverPeriods_DrawCounts(t *testing.T) {
	tests := []struct {
		periods   float64
		wantDraws int
	}{
		{-3, 1},
		{0, 1},
		{0.25, 1},
		{1, 1},
		{1.5, 2},
		{2, 2},
		{3, 3},
		{3.75, 4},
	}
	for _, tc := range tests {
		src := testutil.NewScriptedSource(0.5)
		rp, err := NewRateProcess(2, src)
		require.NoError(t, err)

		_, err = rp.IntegrateOverPeriods(tc.periods)
		require.NoError(t, err)
		assert.Equal(t, tc.wantDraws, src.Calls, "periods=%v", tc.periods)
	}
}

func TestIntegrateOverPeriods_FractionalRemainderScalesLastDraw(t *testing.T) {
	// GIVEN a constant draw whose magnitude is exactly 1 per period
	u := 1 - math.Exp(-1)
	rp, err := NewRateProcess(1, testutil.NewScriptedSource(u))
	require.NoError(t, err)

	// THEN whole periods add 1 each and the remainder scales the final draw
	for _, tc := range []struct{ periods, want float64 }{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 2},
		{2.5, 2.5},
		{10, 10},
	} {
		got, err := rp.IntegrateOverPeriods(tc.periods)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "periods=%v", tc.periods)
	}
}

func TestIntegrateOverPeriods_NonNegative(t *testing.T) {
	rp, err := NewRateProcess(5, NewFloat64Source(rand.New(rand.NewSource(9))))
	require.NoError(t, err)
	for _, p := range []float64{-100, -1, -0.5, 0, 1e-9, 0.5, 7, 123.25} {
		v, err := rp.IntegrateOverPeriods(p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.0, "periods=%v", p)
	}
}

func TestIntegrateOverPeriods_NonFinite(t *testing.T) {
	rp, err := NewRateProcess(1, testutil.NewScriptedSource(0.5))
	require.NoError(t, err)
	_, err = rp.IntegrateOverPeriods(math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = rp.IntegrateOverPeriods(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestIntegrateOverPeriods_AboveMaxPeriods_Rejected(t *testing.T) {
	// GIVEN a period count far past the point where subtracting 1 is a no-op
	src := testutil.NewScriptedSource(0.5)
	rp, err := NewRateProcess(1, src)
	require.NoError(t, err)

	// WHEN integrating, THEN it fails fast without drawing
	for _, p := range []float64{MaxPeriods + 1, 1 << 53, 1e17} {
		_, err = rp.IntegrateOverPeriods(p)
		assert.ErrorIs(t, err, ErrInvalidArgument, "periods=%v", p)
	}
	assert.Equal(t, 0, src.Calls)
}

func TestIntegrateOverPeriods_BadDraw_Propagates(t *testing.T) {
	rp, err := NewRateProcess(1, testutil.NewScriptedSource(0.5, 0.5, 1))
	require.NoError(t, err)
	_, err = rp.IntegrateOverPeriods(5)
	assert.ErrorIs(t, err, ErrDrawOutOfRange)
}
