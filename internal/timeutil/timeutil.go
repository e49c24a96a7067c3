package timeutil

import (
	"math"
	"time"
)

// MinutesPerDay is the length of a civil day in minutes.
const MinutesPerDay = 1440.0

// DayOfYear returns the 1-based day of year of the wall clock t.
// The wall clock is read as-is; callers pass a time already in the
// observer's zone.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// MinuteOfDay returns fractional minutes since local midnight of the wall clock t.
func MinuteOfDay(t time.Time) float64 {
	return float64(t.Hour())*60 +
		float64(t.Minute()) +
		float64(t.Second())/60 +
		float64(t.Nanosecond())/(60*1e9)
}

// MinutesToTime converts fractional minutes since local midnight into a time
// on the calendar date of day, in day's location.
func MinutesToTime(day time.Time, minutes float64) time.Time {
	year, month, d := day.Date()
	base := time.Date(year, month, d, 0, 0, 0, 0, day.Location())

	// Round to the nearest second to avoid nanosecond noise.
	sec := int64(math.Round(minutes * 60))

	return base.Add(time.Duration(sec) * time.Second)
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

// AsinD returns arcsin(x) in degrees with x clamped to [-1, 1].
func AsinD(x float64) float64 {
	return Rad2Deg(math.Asin(Clamp(x, -1, 1)))
}

// AcosD returns arccos(x) in degrees with x clamped to [-1, 1].
func AcosD(x float64) float64 {
	return Rad2Deg(math.Acos(Clamp(x, -1, 1)))
}

// Clamp limits x to [lo, hi]. NaN is passed through unchanged.
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
