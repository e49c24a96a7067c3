package sunpath

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/sunpath/internal/timeutil"
)

// maxOffsetMinutes bounds the UTC offsets in use worldwide (UTC-12..UTC+14).
const maxOffsetMinutes = 14 * 60

var (
	// ErrInvalidInput is returned for non-finite or out-of-range coordinates,
	// malformed instants and other degenerate arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoRiseNoSet is returned when the Sun does not cross the requested
	// altitude on that date at that location.
	ErrNoRiseNoSet = errors.New("sun does not cross this altitude on this date")
)

// GeoCoordinate is an observer's location.
type GeoCoordinate struct {
	Latitude  float64 // degrees, north positive [-90, 90]
	Longitude float64 // degrees, east positive [-180, 180] (west negative, e.g. -99.13)
}

// Validate reports ErrInvalidInput when either component is non-finite or
// out of range. Accuracy of the source is not considered.
func (c GeoCoordinate) Validate() error {
	if !isFinite(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidInput, c.Latitude)
	}
	if !isFinite(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidInput, c.Longitude)
	}
	return nil
}

// Instant is a calendar instant together with the UTC offset of the
// observer's clock. The offset is data, never read from the host locale.
type Instant struct {
	Time             time.Time
	UTCOffsetMinutes int
}

// NewInstant builds an Instant taking the offset from t's zone at t.
// Historical local-mean-time zones carry offsets with seconds (e.g.
// -5:36:45); those are rounded to the nearest minute.
func NewInstant(t time.Time) Instant {
	_, off := t.Zone()
	return Instant{Time: t, UTCOffsetMinutes: int(math.Round(float64(off) / 60))}
}

// InstantAt builds an Instant pinned to an explicit UTC offset in minutes.
func InstantAt(t time.Time, utcOffsetMinutes int) Instant {
	return Instant{Time: t, UTCOffsetMinutes: utcOffsetMinutes}
}

// Validate reports ErrInvalidInput for a zero time or an offset outside
// ±14 hours.
func (i Instant) Validate() error {
	if i.Time.IsZero() {
		return fmt.Errorf("%w: zero instant", ErrInvalidInput)
	}
	if i.UTCOffsetMinutes < -maxOffsetMinutes || i.UTCOffsetMinutes > maxOffsetMinutes {
		return fmt.Errorf("%w: utc offset %d minutes out of range", ErrInvalidInput, i.UTCOffsetMinutes)
	}
	return nil
}

// Zone returns a fixed zone carrying the instant's offset.
func (i Instant) Zone() *time.Location {
	return time.FixedZone(offsetName(i.UTCOffsetMinutes), i.UTCOffsetMinutes*60)
}

// Local returns the wall-clock time of the instant in its own offset.
func (i Instant) Local() time.Time {
	return i.Time.In(i.Zone())
}

// DayOfYear is the 1-based day index of the local calendar date.
func (i Instant) DayOfYear() int {
	return timeutil.DayOfYear(i.Local())
}

// MinuteOfDay is the fractional number of minutes since local midnight.
func (i Instant) MinuteOfDay() float64 {
	return timeutil.MinuteOfDay(i.Local())
}

// ClockAt converts a minute-of-day produced by the engine (sunrise, solar
// noon, a trajectory sample) into a concrete time on the instant's local date.
func (i Instant) ClockAt(minutes float64) time.Time {
	return timeutil.MinutesToTime(i.Local(), minutes)
}

func offsetName(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
