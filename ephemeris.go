// Package sunpath computes the Sun's daily path for a site survey: sunrise,
// sunset, solar noon, day length, the current azimuth/elevation, and the
// geometry used to draw that path on a polar compass diagram.
//
// It uses the simplified NOAA-style closed-form approximation (declination
// and equation of time from a single annual phase angle), which is good to a
// few minutes for field estimation. All functions are pure: they take the
// instant and coordinate explicitly, never read the wall clock, keep no
// state and are safe for concurrent use.
package sunpath

import (
	"encoding/json"
	"fmt"

	"github.com/thurmanmarka/sunpath/internal/sun"
)

// DayCondition describes whether the Sun rises and sets on a date.
type DayCondition int

const (
	// conditionUnset is the zero value: no calculation has filled the
	// position, so it has no sunrise or sunset either.
	conditionUnset DayCondition = iota
	// DayNormal means the Sun rises and sets.
	DayNormal
	// PolarNight means the Sun never reaches the apparent horizon.
	PolarNight
	// PolarDay means the Sun never drops below the apparent horizon.
	PolarDay
)

func (c DayCondition) String() string {
	switch c {
	case DayNormal:
		return "normal"
	case PolarNight:
		return "polar night"
	case PolarDay:
		return "polar day"
	default:
		return "unknown"
	}
}

// MarshalText encodes the condition by name.
func (c DayCondition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (c *DayCondition) UnmarshalText(text []byte) error {
	for _, v := range []DayCondition{conditionUnset, DayNormal, PolarNight, PolarDay} {
		if v.String() == string(text) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown day condition %q", text)
}

// SunPosition is the result of ComputeSunPosition for one instant and
// coordinate. All times are minutes since local midnight in the instant's offset; they
// may fall outside [0, 1440) for sites far from their zone meridian.
//
// In JSON, sunrise_minutes and sunset_minutes are null unless HasRiseSet.
type SunPosition struct {
	DayOfYear int `json:"day_of_year"`

	// SunriseMinutes and SunsetMinutes are only meaningful when
	// HasRiseSet reports true; under a polar condition both are 0.
	SunriseMinutes   float64      `json:"sunrise_minutes"`
	SunsetMinutes    float64      `json:"sunset_minutes"`
	SolarNoonMinutes float64      `json:"solar_noon_minutes"`
	DaylightHours    float64      `json:"daylight_hours"` // [0, 24]
	Condition        DayCondition `json:"condition"`

	DeclinationDeg        float64 `json:"declination_deg"`
	EquationOfTimeMinutes float64 `json:"equation_of_time_minutes"`
	MaxElevationDeg       float64 `json:"max_elevation_deg"`

	AzimuthAtSunriseDeg float64 `json:"azimuth_at_sunrise_deg"`
	AzimuthAtSunsetDeg  float64 `json:"azimuth_at_sunset_deg"`

	// Position at the instant passed to ComputeSunPosition.
	CurrentElevationDeg float64 `json:"current_elevation_deg"`
	CurrentAzimuthDeg   float64 `json:"current_azimuth_deg"`
}

// HasRiseSet reports whether sunrise and sunset exist on this date. The zero
// SunPosition has neither.
func (p SunPosition) HasRiseSet() bool {
	return p.Condition == DayNormal
}

// MarshalJSON writes sunrise and sunset as null when they do not exist.
func (p SunPosition) MarshalJSON() ([]byte, error) {
	type plain SunPosition
	out := struct {
		plain
		SunriseMinutes *float64 `json:"sunrise_minutes"`
		SunsetMinutes  *float64 `json:"sunset_minutes"`
	}{plain: plain(p)}

	if p.HasRiseSet() {
		out.SunriseMinutes = &p.SunriseMinutes
		out.SunsetMinutes = &p.SunsetMinutes
	}
	return json.Marshal(out)
}

// ComputeSunPosition evaluates the Sun's daily parameters and its position at
// the given instant for an observer at coord.
//
// Polar day and polar night are not errors: they are reported through
// Condition, with DaylightHours 24 or 0. Only degenerate input (non-finite or
// out-of-range coordinates, a zero instant, an impossible offset) returns
// ErrInvalidInput.
func ComputeSunPosition(instant Instant, coord GeoCoordinate) (SunPosition, error) {
	if err := coord.Validate(); err != nil {
		return SunPosition{}, err
	}
	if err := instant.Validate(); err != nil {
		return SunPosition{}, err
	}

	c := sun.CoefficientsForDay(instant.DayOfYear())
	lat := coord.Latitude
	noon := c.SolarNoon(coord.Longitude, instant.UTCOffsetMinutes)

	pos := SunPosition{
		DayOfYear:             c.DayOfYear,
		SolarNoonMinutes:      noon,
		DeclinationDeg:        c.Declination,
		EquationOfTimeMinutes: c.EquationOfTime,
		MaxElevationDeg:       sun.MaxElevation(lat, c.Declination),
	}

	ha, crossing := sun.HourAngleAt(lat, c.Declination, sun.ApparentHorizonAltitude)
	switch crossing {
	case sun.NeverReaches:
		pos.Condition = PolarNight
		pos.DaylightHours = 0
	case sun.NeverDrops:
		pos.Condition = PolarDay
		pos.DaylightHours = 24
	default:
		pos.Condition = DayNormal
		pos.SunriseMinutes = noon - 4*ha
		pos.SunsetMinutes = noon + 4*ha
		pos.DaylightHours = (pos.SunsetMinutes - pos.SunriseMinutes) / 60
	}

	// Mirror symmetry around solar noon. Not exact under rigorous geometry,
	// but the surveyed values depend on it.
	pos.AzimuthAtSunriseDeg = sun.RiseAzimuth(lat, c.Declination)
	pos.AzimuthAtSunsetDeg = 360 - pos.AzimuthAtSunriseDeg

	now := sun.HorizontalAt(lat, c.Declination, sun.HourAngle(instant.MinuteOfDay()-noon))
	pos.CurrentElevationDeg = now.Elevation
	pos.CurrentAzimuthDeg = now.Azimuth

	return pos, nil
}

