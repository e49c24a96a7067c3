package sunpath_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/thurmanmarka/sunpath"
)

func mustPosition(t *testing.T, inst sunpath.Instant, coord sunpath.GeoCoordinate) sunpath.SunPosition {
	t.Helper()
	pos, err := sunpath.ComputeSunPosition(inst, coord)
	require.NoError(t, err)
	return pos
}

func localNoonInstant(year int, month time.Month, day int, offsetMinutes int) sunpath.Instant {
	zone := time.FixedZone("site", offsetMinutes*60)
	return sunpath.NewInstant(time.Date(year, month, day, 12, 0, 0, 0, zone))
}

func TestComputeSunPosition_MexicoCitySummerSolstice(t *testing.T) {
	mexicoCity := sunpath.GeoCoordinate{Latitude: 19.4326, Longitude: -99.1332}
	inst := localNoonInstant(2025, time.June, 21, -360)

	pos := mustPosition(t, inst, mexicoCity)

	require.Equal(t, 172, pos.DayOfYear)
	require.True(t, pos.HasRiseSet())

	// 720 + 4*99.1332 - EoT + (-360): a little after 12:37 on the site clock.
	assert.InDelta(t, 758.0, pos.SolarNoonMinutes, 1.0)
	assert.InDelta(t, 13.2, pos.DaylightHours, 0.3)
	assert.GreaterOrEqual(t, pos.MaxElevationDeg, 83.0)
	assert.LessOrEqual(t, pos.MaxElevationDeg, 86.0)

	t.Logf("noon=%.2f min daylight=%.2f h maxElev=%.2f°", pos.SolarNoonMinutes, pos.DaylightHours, pos.MaxElevationDeg)
}

func TestComputeSunPosition_SantiagoSouthernSummer(t *testing.T) {
	santiago := sunpath.GeoCoordinate{Latitude: -33.45, Longitude: -70.66}
	inst := localNoonInstant(2025, time.December, 21, -180)

	pos := mustPosition(t, inst, santiago)

	require.Equal(t, 355, pos.DayOfYear)
	require.True(t, pos.HasRiseSet())
	assert.InDelta(t, 14.3, pos.DaylightHours, 0.3)
	assert.InDelta(t, 81.5, pos.MaxElevationDeg, 1.6)
}

func TestComputeSunPosition_EquatorEquinox(t *testing.T) {
	equator := sunpath.GeoCoordinate{Latitude: 0, Longitude: 0}

	dates := []time.Time{
		time.Date(2025, time.March, 22, 12, 0, 0, 0, time.UTC),     // day 81
		time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC), // day 264
	}

	for _, date := range dates {
		pos := mustPosition(t, sunpath.NewInstant(date), equator)

		assert.InDelta(t, 90, pos.MaxElevationDeg, 1.0, "day %d", pos.DayOfYear)
		assert.InDelta(t, 12, pos.DaylightHours, 0.25, "day %d", pos.DayOfYear)
	}
}

func TestComputeSunPosition_PolarConditions(t *testing.T) {
	tests := []struct {
		name      string
		lat       float64
		month     time.Month
		condition sunpath.DayCondition
		daylight  float64
	}{
		{"north winter solstice", 80, time.December, sunpath.PolarNight, 0},
		{"north summer solstice", 80, time.June, sunpath.PolarDay, 24},
		{"south winter solstice", -80, time.June, sunpath.PolarNight, 0},
		{"south summer solstice", -80, time.December, sunpath.PolarDay, 24},
		{"north pole in june", 90, time.June, sunpath.PolarDay, 24},
		{"south pole in june", -90, time.June, sunpath.PolarNight, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := localNoonInstant(2025, tt.month, 21, 0)
			pos := mustPosition(t, inst, sunpath.GeoCoordinate{Latitude: tt.lat, Longitude: 15})

			assert.Equal(t, tt.condition, pos.Condition)
			assert.False(t, pos.HasRiseSet())
			assert.Equal(t, 0.0, pos.SunriseMinutes)
			assert.Equal(t, 0.0, pos.SunsetMinutes)
			assert.Equal(t, tt.daylight, pos.DaylightHours)

			assert.False(t, math.IsNaN(pos.CurrentAzimuthDeg))
			assert.False(t, math.IsNaN(pos.CurrentElevationDeg))
			assert.False(t, math.IsNaN(pos.AzimuthAtSunriseDeg))
		})
	}
}

func TestComputeSunPosition_OrderingOutsidePolarCircles(t *testing.T) {
	longitudes := []float64{-179, -99.1332, 0, 42.5, 151.2}

	for lat := -60.0; lat <= 60.0; lat += 10 {
		for _, lon := range longitudes {
			offset := int(math.Round(lon/15)) * 60
			for day := 0; day < 365; day += 5 {
				date := time.Date(2025, time.January, 1, 9, 30, 0, 0, time.UTC).AddDate(0, 0, day)
				inst := sunpath.InstantAt(date, offset)
				coord := sunpath.GeoCoordinate{Latitude: lat, Longitude: lon}

				pos := mustPosition(t, inst, coord)

				require.True(t, pos.HasRiseSet(), "lat=%v lon=%v day=%d", lat, lon, day)
				assert.Less(t, pos.SunriseMinutes, pos.SolarNoonMinutes)
				assert.Less(t, pos.SolarNoonMinutes, pos.SunsetMinutes)
				assert.Greater(t, pos.DaylightHours, 0.0)
				assert.Less(t, pos.DaylightHours, 24.0)
			}
		}
	}
}

func TestComputeSunPosition_AzimuthMirror(t *testing.T) {
	for lat := -60.0; lat <= 60.0; lat += 7.5 {
		for day := 0; day < 365; day += 11 {
			date := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, day)
			pos := mustPosition(t, sunpath.NewInstant(date), sunpath.GeoCoordinate{Latitude: lat, Longitude: 3})

			assert.Equal(t, 360.0, pos.AzimuthAtSunriseDeg+pos.AzimuthAtSunsetDeg,
				"lat=%v day=%d", lat, pos.DayOfYear)
		}
	}
}

func TestComputeSunPosition_CurrentPositionAtSolarNoon(t *testing.T) {
	phoenix := sunpath.GeoCoordinate{Latitude: 33.4484, Longitude: -112.0740}
	day := localNoonInstant(2025, time.June, 21, -420)

	daily := mustPosition(t, day, phoenix)
	atNoon := mustPosition(t, sunpath.NewInstant(day.ClockAt(daily.SolarNoonMinutes)), phoenix)

	assert.InDelta(t, daily.MaxElevationDeg, atNoon.CurrentElevationDeg, 0.01)
	assert.InDelta(t, 180, atNoon.CurrentAzimuthDeg, 0.5)
}

func TestComputeSunPosition_CurrentPositionMorningAndNight(t *testing.T) {
	phoenix := sunpath.GeoCoordinate{Latitude: 33.4484, Longitude: -112.0740}
	zone := time.FixedZone("MST", -7*3600)

	morning := mustPosition(t, sunpath.NewInstant(time.Date(2025, time.June, 21, 9, 0, 0, 0, zone)), phoenix)
	assert.Greater(t, morning.CurrentElevationDeg, 0.0)
	assert.Greater(t, morning.CurrentAzimuthDeg, 0.0)
	assert.Less(t, morning.CurrentAzimuthDeg, 180.0)

	afternoon := mustPosition(t, sunpath.NewInstant(time.Date(2025, time.June, 21, 16, 0, 0, 0, zone)), phoenix)
	assert.Greater(t, afternoon.CurrentAzimuthDeg, 180.0)

	night := mustPosition(t, sunpath.NewInstant(time.Date(2025, time.June, 21, 23, 30, 0, 0, zone)), phoenix)
	assert.Less(t, night.CurrentElevationDeg, 0.0)
}

func TestComputeSunPosition_OffsetTravelsWithInstant(t *testing.T) {
	phoenix := sunpath.GeoCoordinate{Latitude: 33.4484, Longitude: -112.0740}
	utc := time.Date(2025, time.March, 22, 19, 0, 0, 0, time.UTC)

	asUTC := mustPosition(t, sunpath.NewInstant(utc), phoenix)
	asMST := mustPosition(t, sunpath.InstantAt(utc, -420), phoenix)

	// Same physical instant: the Sun is in the same place.
	assert.InDelta(t, asUTC.CurrentElevationDeg, asMST.CurrentElevationDeg, 1e-6)
	assert.InDelta(t, asUTC.CurrentAzimuthDeg, asMST.CurrentAzimuthDeg, 1e-6)

	// Clock-relative quantities shift by the offset.
	assert.InDelta(t, 420, asUTC.SolarNoonMinutes-asMST.SolarNoonMinutes, 1e-9)
}

func TestComputeSunPosition_InvalidInput(t *testing.T) {
	valid := localNoonInstant(2025, time.June, 21, 0)

	tests := []struct {
		name  string
		inst  sunpath.Instant
		coord sunpath.GeoCoordinate
	}{
		{"NaN latitude", valid, sunpath.GeoCoordinate{Latitude: math.NaN()}},
		{"latitude above 90", valid, sunpath.GeoCoordinate{Latitude: 90.5}},
		{"infinite longitude", valid, sunpath.GeoCoordinate{Longitude: math.Inf(-1)}},
		{"longitude below -180", valid, sunpath.GeoCoordinate{Longitude: -180.01}},
		{"zero instant", sunpath.Instant{}, sunpath.GeoCoordinate{}},
		{"offset beyond 14h", sunpath.InstantAt(valid.Time, 15*60), sunpath.GeoCoordinate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sunpath.ComputeSunPosition(tt.inst, tt.coord)
			assert.ErrorIs(t, err, sunpath.ErrInvalidInput)
		})
	}
}

func TestComputeSunPosition_Concurrent(t *testing.T) {
	coord := sunpath.GeoCoordinate{Latitude: 47.6, Longitude: -122.3}
	inst := localNoonInstant(2025, time.October, 1, -420)
	want := mustPosition(t, inst, coord)

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			got, err := sunpath.ComputeSunPosition(inst, coord)
			if err != nil {
				return err
			}
			assert.Equal(t, want, got)
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestDayCondition_String(t *testing.T) {
	assert.Equal(t, "normal", sunpath.DayNormal.String())
	assert.Equal(t, "polar night", sunpath.PolarNight.String())
	assert.Equal(t, "polar day", sunpath.PolarDay.String())
	assert.Equal(t, "unknown", sunpath.DayCondition(9).String())
	assert.Equal(t, "unknown", sunpath.SunPosition{}.Condition.String())
}

func TestSunPosition_JSON(t *testing.T) {
	t.Run("polar night has null sunrise and sunset", func(t *testing.T) {
		pos := mustPosition(t, localNoonInstant(2025, time.December, 21, 0), sunpath.GeoCoordinate{Latitude: 80, Longitude: 15})

		data, err := json.Marshal(pos)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Contains(t, fields, "sunrise_minutes")
		assert.Nil(t, fields["sunrise_minutes"])
		assert.Nil(t, fields["sunset_minutes"])
		assert.Equal(t, "polar night", fields["condition"])
		assert.Equal(t, 0.0, fields["daylight_hours"])
	})

	t.Run("normal day round trips", func(t *testing.T) {
		pos := mustPosition(t, localNoonInstant(2025, time.June, 21, -360), sunpath.GeoCoordinate{Latitude: 19.4326, Longitude: -99.1332})

		data, err := json.Marshal(pos)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.InDelta(t, pos.SunriseMinutes, fields["sunrise_minutes"], 1e-9)
		assert.Equal(t, "normal", fields["condition"])

		var back sunpath.SunPosition
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, pos, back)
	})

	t.Run("unknown condition name is rejected", func(t *testing.T) {
		var back sunpath.SunPosition
		assert.Error(t, json.Unmarshal([]byte(`{"condition":"twilight"}`), &back))
	})
}
