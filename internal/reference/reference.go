// Package reference wraps an independent sunrise/sunset implementation
// (github.com/nathan-osman/go-sunrise) so the simplified engine can be
// cross-checked against it.
package reference

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/sunpath"
)

// RiseSet returns the reference sunrise and sunset for the calendar date of
// date, in date's location. ok is false when the reference model reports no
// rise or set (polar conditions).
func RiseSet(coord sunpath.GeoCoordinate, date time.Time) (rise, set time.Time, ok bool) {
	year, month, day := date.Date()
	riseUTC, setUTC := sunrise.SunriseSunset(coord.Latitude, coord.Longitude, year, month, day)
	if riseUTC.IsZero() || setUTC.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return riseUTC.In(date.Location()), setUTC.In(date.Location()), true
}

// Delta holds signed differences (engine minus reference) in minutes.
type Delta struct {
	Rise float64
	Set  float64
}

// Compare evaluates the reference model for the local date of inst and
// returns how far pos's sunrise and sunset are from it. ok is false when
// either side has no rise or set.
func Compare(inst sunpath.Instant, coord sunpath.GeoCoordinate, pos sunpath.SunPosition) (Delta, bool) {
	if !pos.HasRiseSet() {
		return Delta{}, false
	}

	local := inst.Local()
	rise, set, ok := RiseSet(coord, local)
	if !ok {
		return Delta{}, false
	}

	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return Delta{
		Rise: pos.SunriseMinutes - rise.Sub(midnight).Minutes(),
		Set:  pos.SunsetMinutes - set.Sub(midnight).Minutes(),
	}, true
}
