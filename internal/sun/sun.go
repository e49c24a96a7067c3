package sun

import (
	"math"

	"github.com/thurmanmarka/sunpath/internal/timeutil"
)

// ApparentHorizonAltitude is the altitude (in degrees) of the Sun's center
// when the apparent upper limb is on the horizon under "standard" conditions.
// It folds in refraction and the Sun's apparent radius.
const ApparentHorizonAltitude = -0.833

// equinoxDay is the day of year used as phase zero of the annual cycle
// (~March equinox).
const equinoxDay = 81

// Coefficients holds the per-day terms of the simplified NOAA model.
// Every quantity derived for a given day (noon, rise/set, samples) must
// come from the same Coefficients so they stay phase-consistent.
type Coefficients struct {
	DayOfYear      int
	B              float64 // annual phase, radians
	EquationOfTime float64 // minutes
	Declination    float64 // degrees
}

// CoefficientsForDay evaluates the annual phase, equation of time and
// declination for a 1-based day of year:
//
//	B    = 360/365 * (day - 81)            (degrees, then radians)
//	EoT  = 9.87 sin(2B) - 7.53 cos(B) - 1.5 sin(B)
//	decl = 23.45 sin(B)
func CoefficientsForDay(dayOfYear int) Coefficients {
	b := timeutil.Deg2Rad(360.0 / 365.0 * float64(dayOfYear-equinoxDay))

	return Coefficients{
		DayOfYear:      dayOfYear,
		B:              b,
		EquationOfTime: 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b),
		Declination:    23.45 * math.Sin(b),
	}
}

// SolarNoon returns solar noon in minutes since local midnight for an
// observer at longitude lon (degrees, east positive) whose clock runs at
// utcOffsetMinutes from UTC.
func (c Coefficients) SolarNoon(lon float64, utcOffsetMinutes int) float64 {
	return 720 - 4*lon - c.EquationOfTime + float64(utcOffsetMinutes)
}

// Crossing classifies whether the Sun crosses a given altitude on a day.
type Crossing int

const (
	// Crosses means the Sun passes through the altitude twice.
	Crosses Crossing = iota
	// NeverReaches means the Sun stays below the altitude all day.
	NeverReaches
	// NeverDrops means the Sun stays above the altitude all day.
	NeverDrops
)

// HourAngleCosine returns cos(H) for the hour angle at which the Sun's
// center sits at altitudeDeg:
//
//	cos H = (sin h - sin φ sin δ) / (cos φ cos δ)
//
// The value is not clamped; values outside [-1, 1] carry the polar meaning.
func HourAngleCosine(lat, decl, altitudeDeg float64) float64 {
	num := timeutil.SinD(altitudeDeg) - timeutil.SinD(lat)*timeutil.SinD(decl)
	den := timeutil.CosD(lat) * timeutil.CosD(decl)
	if den == 0 {
		if num > 0 {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return num / den
}

// HourAngleAt returns the hour angle (degrees, >= 0) at which the Sun crosses
// altitudeDeg, together with the crossing classification. When the Sun does
// not cross, the hour angle is 0.
func HourAngleAt(lat, decl, altitudeDeg float64) (float64, Crossing) {
	cosHA := HourAngleCosine(lat, decl, altitudeDeg)
	switch {
	case cosHA > 1:
		return 0, NeverReaches
	case cosHA < -1:
		return 0, NeverDrops
	case math.IsNaN(cosHA):
		if MaxElevation(lat, decl) >= altitudeDeg {
			return 0, NeverDrops
		}
		return 0, NeverReaches
	}
	return timeutil.AcosD(cosHA), Crosses
}

// MaxElevation is the elevation (degrees) at solar noon.
func MaxElevation(lat, decl float64) float64 {
	return 90 - math.Abs(lat-decl)
}

// RiseAzimuth returns the azimuth (degrees from north, clockwise) at which
// the Sun's center reaches the apparent horizon in the morning.
func RiseAzimuth(lat, decl float64) float64 {
	num := timeutil.SinD(decl) - timeutil.SinD(lat)*timeutil.SinD(ApparentHorizonAltitude)
	den := timeutil.CosD(lat) * timeutil.CosD(ApparentHorizonAltitude)
	return timeutil.AcosD(num / den)
}
