// Package clock supplies instants to the engine. The engine never reads the
// wall clock itself; callers obtain an Instant here and pass it in.
package clock

import (
	"time"

	"github.com/thurmanmarka/sunpath"
)

// Clock is a source of the current time.
type Clock interface {
	Now() time.Time
}

// System reads the host clock and reports it in Location.
// A nil Location means time.Local.
type System struct {
	Location *time.Location
}

// Now implements Clock.
func (s System) Now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// Fixed always returns the same time. Used by tests and for replaying a
// recorded visit.
type Fixed time.Time

// Now implements Clock.
func (f Fixed) Now() time.Time { return time.Time(f) }

// Instant reads c once and pairs the time with the offset of its zone.
func Instant(c Clock) sunpath.Instant {
	return sunpath.NewInstant(c.Now())
}

// DateInstant returns the instant at local noon of the given YYYY-MM-DD date
// in loc. Noon keeps the calendar date stable across offset changes.
func DateInstant(date string, loc *time.Location) (sunpath.Instant, error) {
	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return sunpath.Instant{}, err
	}
	return sunpath.NewInstant(time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)), nil
}

// ParseInstant parses a timestamp in one of the common layouts, interpreting
// zoneless values in loc.
func ParseInstant(s string, loc *time.Location) (sunpath.Instant, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}

	var parseErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return sunpath.NewInstant(t), nil
		}
		parseErr = err
	}

	if inst, err := DateInstant(s, loc); err == nil {
		return inst, nil
	}
	return sunpath.Instant{}, parseErr
}
