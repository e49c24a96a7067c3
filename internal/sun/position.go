package sun

import (
	"math"

	"github.com/thurmanmarka/sunpath/internal/timeutil"
)

// degenerateDen is the magnitude below which the azimuth denominator
// cos φ cos h is treated as zero (observer at a pole or Sun at the zenith).
const degenerateDen = 1e-9

// Horizontal is a position on the observer's sky.
type Horizontal struct {
	Elevation float64 // degrees above the horizon
	Azimuth   float64 // degrees from north, clockwise
}

// HourAngle converts minutes from solar noon into an hour angle in degrees
// (4 minutes = 1°), wrapped to (-180, 180]. Negative is morning.
func HourAngle(minutesFromNoon float64) float64 {
	ha := math.Mod(minutesFromNoon/4, 360)
	if ha > 180 {
		ha -= 360
	} else if ha <= -180 {
		ha += 360
	}
	return ha
}

// HorizontalAt evaluates the Sun's elevation and azimuth for an observer at
// latitude lat, declination decl and hour angle ha (all degrees):
//
//	sin h   = sin φ sin δ + cos φ cos δ cos H
//	cos A   = (sin δ - sin φ sin h) / (cos φ cos h)
//
// Azimuth is mirrored to 360 - A in the afternoon (H > 0) so it increases
// through the day.
func HorizontalAt(lat, decl, ha float64) Horizontal {
	sinElev := timeutil.SinD(lat)*timeutil.SinD(decl) +
		timeutil.CosD(lat)*timeutil.CosD(decl)*timeutil.CosD(ha)
	sinElev = timeutil.Clamp(sinElev, -1, 1)
	elev := timeutil.AsinD(sinElev)

	den := timeutil.CosD(lat) * timeutil.CosD(elev)
	if math.Abs(den) < degenerateDen {
		// Pole or zenith: azimuth is undefined, report the meridian.
		az := 180.0
		if lat < 0 {
			az = 0
		}
		return Horizontal{Elevation: elev, Azimuth: az}
	}

	cosAz := (timeutil.SinD(decl) - timeutil.SinD(lat)*sinElev) / den
	az := timeutil.AcosD(cosAz)
	if ha > 0 {
		az = 360 - az
	}

	return Horizontal{Elevation: elev, Azimuth: az}
}
