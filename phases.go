package sunpath

import (
	"fmt"

	"github.com/thurmanmarka/sunpath/internal/sun"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

// Altitude returns the Sun-center altitude defining the twilight kind.
func (k TwilightKind) Altitude() (float64, error) {
	switch k {
	case TwilightCivil:
		return -6.0, nil
	case TwilightNautical:
		return -12.0, nil
	case TwilightAstronomical:
		return -18.0, nil
	default:
		return 0, fmt.Errorf("%w: unknown TwilightKind %d", ErrInvalidInput, k)
	}
}

// PhaseWindow is a continuous interval, in minutes since local midnight,
// where the Sun's altitude stays within a range.
type PhaseWindow struct {
	StartMinutes float64
	EndMinutes   float64
}

// DaylightPhases holds the morning and evening windows for a given phase
// (e.g. golden hour or blue hour).
type DaylightPhases struct {
	// Morning is the interval after dawn / sunrise.
	Morning PhaseWindow
	// Evening is the interval before dusk / sunset.
	Evening PhaseWindow

	// HasMorning / HasEvening indicate whether the corresponding window
	// exists on this date at this location (high latitudes can be weird).
	HasMorning bool
	HasEvening bool
}

// CrossingsAt returns the minutes of day when the Sun's center rises through
// and sets through altitudeDeg, using the same day coefficients as pos.
// ok is false when the Sun stays entirely above or below that altitude.
func CrossingsAt(pos SunPosition, coord GeoCoordinate, altitudeDeg float64) (rise, set float64, ok bool, err error) {
	if err := coord.Validate(); err != nil {
		return 0, 0, false, err
	}
	if !isFinite(altitudeDeg) || altitudeDeg < -90 || altitudeDeg > 90 {
		return 0, 0, false, fmt.Errorf("%w: altitude %v", ErrInvalidInput, altitudeDeg)
	}

	ha, crossing := sun.HourAngleAt(coord.Latitude, pos.DeclinationDeg, altitudeDeg)
	if crossing != sun.Crosses {
		return 0, 0, false, nil
	}
	return pos.SolarNoonMinutes - 4*ha, pos.SolarNoonMinutes + 4*ha, true, nil
}

// TwilightFor computes dawn (upward crossing) and dusk (downward crossing)
// of the given twilight kind. ErrNoRiseNoSet is returned when the Sun never
// crosses the twilight altitude that day.
func TwilightFor(pos SunPosition, coord GeoCoordinate, kind TwilightKind) (PhaseWindow, error) {
	alt, err := kind.Altitude()
	if err != nil {
		return PhaseWindow{}, err
	}

	dawn, dusk, ok, err := CrossingsAt(pos, coord, alt)
	if err != nil {
		return PhaseWindow{}, err
	}
	if !ok {
		return PhaseWindow{}, ErrNoRiseNoSet
	}
	return PhaseWindow{StartMinutes: dawn, EndMinutes: dusk}, nil
}

// GoldenHourFor computes the golden hour intervals, when the Sun's center
// altitude is between -4° and +6°. Morning is the Sun climbing from -4° to
// +6°, evening the Sun descending from +6° to -4°.
func GoldenHourFor(pos SunPosition, coord GeoCoordinate) (DaylightPhases, error) {
	return phasesBetween(pos, coord, -4.0, 6.0)
}

// BlueHourFor computes the blue hour intervals, when the Sun's center
// altitude is between -6° and -4°.
func BlueHourFor(pos SunPosition, coord GeoCoordinate) (DaylightPhases, error) {
	return phasesBetween(pos, coord, -6.0, -4.0)
}

func phasesBetween(pos SunPosition, coord GeoCoordinate, lowAlt, highAlt float64) (DaylightPhases, error) {
	riseLow, setLow, okLow, err := CrossingsAt(pos, coord, lowAlt)
	if err != nil {
		return DaylightPhases{}, err
	}
	riseHigh, setHigh, okHigh, err := CrossingsAt(pos, coord, highAlt)
	if err != nil {
		return DaylightPhases{}, err
	}

	var phases DaylightPhases

	if okLow && okHigh {
		if riseHigh > riseLow {
			phases.Morning = PhaseWindow{StartMinutes: riseLow, EndMinutes: riseHigh}
			phases.HasMorning = true
		}
		if setLow > setHigh {
			phases.Evening = PhaseWindow{StartMinutes: setHigh, EndMinutes: setLow}
			phases.HasEvening = true
		}
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}
