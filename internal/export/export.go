// Package export flattens engine results into spreadsheet rows. Times are
// rendered as HH:MM on the site clock; polar days leave sunrise and sunset
// empty.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/timeutil"
)

// Snapshot is everything recorded about the Sun for one site visit.
type Snapshot struct {
	Site        string
	Coordinate  sunpath.GeoCoordinate
	Instant     sunpath.Instant
	Position    sunpath.SunPosition
	Orientation sunpath.PanelOrientation
}

// Header returns the column names matching Row.
func Header() []string {
	return []string{
		"site",
		"latitude",
		"longitude",
		"date",
		"time",
		"utc_offset_min",
		"condition",
		"sunrise",
		"solar_noon",
		"sunset",
		"daylight_h",
		"declination_deg",
		"max_elevation_deg",
		"azimuth_sunrise_deg",
		"azimuth_sunset_deg",
		"elevation_deg",
		"azimuth_deg",
		"panel_tilt_deg",
		"panel_azimuth_deg",
	}
}

// Row flattens a snapshot into text fields in Header order.
func Row(s Snapshot) []string {
	p := s.Position
	local := s.Instant.Local()

	sunrise, sunset := "", ""
	if p.HasRiseSet() {
		sunrise = FormatClock(p.SunriseMinutes)
		sunset = FormatClock(p.SunsetMinutes)
	}

	return []string{
		s.Site,
		formatFloat(s.Coordinate.Latitude, 6),
		formatFloat(s.Coordinate.Longitude, 6),
		local.Format("2006-01-02"),
		local.Format("15:04"),
		strconv.Itoa(s.Instant.UTCOffsetMinutes),
		p.Condition.String(),
		sunrise,
		FormatClock(p.SolarNoonMinutes),
		sunset,
		formatFloat(p.DaylightHours, 2),
		formatFloat(p.DeclinationDeg, 2),
		formatFloat(p.MaxElevationDeg, 2),
		formatFloat(p.AzimuthAtSunriseDeg, 1),
		formatFloat(p.AzimuthAtSunsetDeg, 1),
		formatFloat(p.CurrentElevationDeg, 2),
		formatFloat(p.CurrentAzimuthDeg, 1),
		formatFloat(s.Orientation.TiltDeg, 1),
		formatFloat(s.Orientation.AzimuthDeg, 0),
	}
}

// WriteCSV writes a header and one row per snapshot.
func WriteCSV(w io.Writer, snapshots []Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, s := range snapshots {
		if err := cw.Write(Row(s)); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryCSV writes one row per trajectory sample.
func WriteTrajectoryCSV(w io.Writer, samples []sunpath.TrajectorySample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "minute_of_day", "azimuth_deg", "elevation_deg"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, s := range samples {
		rec := []string{
			FormatClock(s.MinuteOfDay),
			formatFloat(s.MinuteOfDay, 2),
			formatFloat(s.AzimuthDeg, 2),
			formatFloat(s.ElevationDeg, 2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatClock renders minutes since local midnight as HH:MM, rounding to
// the nearest minute and wrapping into [00:00, 23:59].
func FormatClock(minutes float64) string {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return ""
	}
	day := int(timeutil.MinutesPerDay)
	m := int(math.Round(minutes)) % day
	if m < 0 {
		m += day
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
