package sunpath

import (
	"fmt"
	"iter"

	"github.com/thurmanmarka/sunpath/internal/sun"
)

// TrajectorySample is one point on the day's solar path.
type TrajectorySample struct {
	MinuteOfDay  float64
	AzimuthDeg   float64
	ElevationDeg float64
}

// Trajectory returns a restartable sequence of steps+1 samples evenly spaced
// in minutes from sunrise to sunset, evaluated with the same declination and
// solar noon as pos. steps == 0 is treated as 1 (sunrise and sunset only).
//
// Under a polar condition the sequence is empty: there is nothing to draw,
// which is not an error.
func Trajectory(pos SunPosition, coord GeoCoordinate, steps int) (iter.Seq[TrajectorySample], error) {
	if err := coord.Validate(); err != nil {
		return nil, err
	}
	if steps < 0 {
		return nil, fmt.Errorf("%w: steps %d must not be negative", ErrInvalidInput, steps)
	}
	if steps == 0 {
		steps = 1
	}

	return func(yield func(TrajectorySample) bool) {
		if !pos.HasRiseSet() {
			return
		}

		span := pos.SunsetMinutes - pos.SunriseMinutes
		for i := 0; i <= steps; i++ {
			minute := pos.SunriseMinutes + span*float64(i)/float64(steps)
			if i == steps {
				minute = pos.SunsetMinutes
			}

			h := sun.HorizontalAt(coord.Latitude, pos.DeclinationDeg, sun.HourAngle(minute-pos.SolarNoonMinutes))
			if !yield(TrajectorySample{
				MinuteOfDay:  minute,
				AzimuthDeg:   h.Azimuth,
				ElevationDeg: h.Elevation,
			}) {
				return
			}
		}
	}, nil
}

// SampleTrajectory collects Trajectory into a slice. Polar days yield an
// empty, non-nil slice.
func SampleTrajectory(pos SunPosition, coord GeoCoordinate, steps int) ([]TrajectorySample, error) {
	seq, err := Trajectory(pos, coord, steps)
	if err != nil {
		return nil, err
	}

	samples := make([]TrajectorySample, 0)
	if pos.HasRiseSet() {
		samples = make([]TrajectorySample, 0, max(steps, 1)+1)
	}
	for s := range seq {
		samples = append(samples, s)
	}
	return samples, nil
}
