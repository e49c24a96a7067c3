package sunpath_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/sun"
)

var denver = sunpath.GeoCoordinate{Latitude: 39.7392, Longitude: -104.9903}

func denverSummer(t *testing.T) sunpath.SunPosition {
	t.Helper()
	return mustPosition(t, localNoonInstant(2025, time.June, 21, -360), denver)
}

func TestSampleTrajectory_Endpoints(t *testing.T) {
	pos := denverSummer(t)

	samples, err := sunpath.SampleTrajectory(pos, denver, 24)
	require.NoError(t, err)
	require.Len(t, samples, 25)

	first, last := samples[0], samples[len(samples)-1]
	assert.Equal(t, pos.SunriseMinutes, first.MinuteOfDay)
	assert.Equal(t, pos.SunsetMinutes, last.MinuteOfDay)

	// Rise and set are defined at the apparent horizon.
	assert.InDelta(t, sun.ApparentHorizonAltitude, first.ElevationDeg, 1e-6)
	assert.InDelta(t, sun.ApparentHorizonAltitude, last.ElevationDeg, 1e-6)

	assert.InDelta(t, pos.AzimuthAtSunriseDeg, first.AzimuthDeg, 1e-6)
	assert.InDelta(t, pos.AzimuthAtSunsetDeg, last.AzimuthDeg, 1e-6)
}

func TestSampleTrajectory_EvenSpacingAndMonotonicAzimuth(t *testing.T) {
	pos := denverSummer(t)

	samples, err := sunpath.SampleTrajectory(pos, denver, 12)
	require.NoError(t, err)

	step := (pos.SunsetMinutes - pos.SunriseMinutes) / 12
	for i := 1; i < len(samples); i++ {
		assert.InDelta(t, step, samples[i].MinuteOfDay-samples[i-1].MinuteOfDay, 1e-9)
		assert.Greater(t, samples[i].AzimuthDeg, samples[i-1].AzimuthDeg, "sample %d", i)
	}

	// The middle sample is solar noon, the highest point.
	assert.InDelta(t, pos.MaxElevationDeg, samples[6].ElevationDeg, 1e-6)
}

func TestSampleTrajectory_Deterministic(t *testing.T) {
	pos := denverSummer(t)

	a, err := sunpath.SampleTrajectory(pos, denver, 48)
	require.NoError(t, err)
	b, err := sunpath.SampleTrajectory(pos, denver, 48)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("trajectory not deterministic (-first +second):\n%s", diff)
	}

	seq, err := sunpath.Trajectory(pos, denver, 48)
	require.NoError(t, err)

	var replay []sunpath.TrajectorySample
	for s := range seq {
		replay = append(replay, s)
	}
	var again []sunpath.TrajectorySample
	for s := range seq {
		again = append(again, s)
	}
	if diff := cmp.Diff(replay, again); diff != "" {
		t.Fatalf("sequence not restartable (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a, replay); diff != "" {
		t.Fatalf("slice and sequence disagree (-slice +seq):\n%s", diff)
	}
}

func TestSampleTrajectory_ZeroSteps(t *testing.T) {
	pos := denverSummer(t)

	samples, err := sunpath.SampleTrajectory(pos, denver, 0)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, pos.SunriseMinutes, samples[0].MinuteOfDay)
	assert.Equal(t, pos.SunsetMinutes, samples[1].MinuteOfDay)
}

func TestSampleTrajectory_PolarIsEmpty(t *testing.T) {
	svalbard := sunpath.GeoCoordinate{Latitude: 80, Longitude: 15}

	for _, month := range []time.Month{time.June, time.December} {
		pos := mustPosition(t, localNoonInstant(2025, month, 21, 60), svalbard)

		samples, err := sunpath.SampleTrajectory(pos, svalbard, 24)
		require.NoError(t, err)
		assert.NotNil(t, samples)
		assert.Empty(t, samples)
	}
}

func TestSampleTrajectory_ZeroPositionIsEmpty(t *testing.T) {
	var pos sunpath.SunPosition
	require.False(t, pos.HasRiseSet())

	samples, err := sunpath.SampleTrajectory(pos, sunpath.GeoCoordinate{Latitude: 10}, 4)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestTrajectory_EarlyStop(t *testing.T) {
	pos := denverSummer(t)

	seq, err := sunpath.Trajectory(pos, denver, 100)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSampleTrajectory_InvalidInput(t *testing.T) {
	pos := denverSummer(t)

	_, err := sunpath.SampleTrajectory(pos, denver, -1)
	assert.ErrorIs(t, err, sunpath.ErrInvalidInput)

	_, err = sunpath.SampleTrajectory(pos, sunpath.GeoCoordinate{Latitude: 100}, 10)
	assert.ErrorIs(t, err, sunpath.ErrInvalidInput)
}
