package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/export"
)

func newPositionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "position",
		Short: "Show sunrise, sunset, solar noon, current sun position and panel orientation",
		Long: `Computes the Sun's daily parameters for the site and its position at the
given instant.

Example:
  sunpath position --lat 19.4326 --lon -99.1332 --tz America/Mexico_City --time 2025-06-21T10:30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.resolveSite(cmd)
			if err != nil {
				return err
			}
			pos, err := a.compute(s)
			if err != nil {
				return err
			}
			orient, err := sunpath.OptimalOrientation(s.Coord)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), newPositionOutput(s, pos, orient))
			}
			printPosition(cmd.OutOrStdout(), s, pos, orient)
			return nil
		},
	}
}

type positionOutput struct {
	Site             string  `json:"site,omitempty"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Time             string  `json:"time"`
	UTCOffsetMinutes int     `json:"utc_offset_minutes"`
	Condition        string  `json:"condition"`

	Sunrise   *string `json:"sunrise,omitempty"` // HH:MM, absent under polar conditions
	Sunset    *string `json:"sunset,omitempty"`
	SolarNoon string  `json:"solar_noon"`

	Position sunpath.SunPosition      `json:"raw"`
	Panel    sunpath.PanelOrientation `json:"panel"`
}

func newPositionOutput(s site, pos sunpath.SunPosition, orient sunpath.PanelOrientation) positionOutput {
	out := positionOutput{
		Site:             s.Name,
		Latitude:         s.Coord.Latitude,
		Longitude:        s.Coord.Longitude,
		Time:             s.Instant.Local().Format("2006-01-02T15:04:05Z07:00"),
		UTCOffsetMinutes: s.Instant.UTCOffsetMinutes,
		Condition:        pos.Condition.String(),
		SolarNoon:        export.FormatClock(pos.SolarNoonMinutes),
		Position:         pos,
		Panel:            orient,
	}
	if pos.HasRiseSet() {
		rise := export.FormatClock(pos.SunriseMinutes)
		set := export.FormatClock(pos.SunsetMinutes)
		out.Sunrise = &rise
		out.Sunset = &set
	}
	return out
}

func printPosition(w io.Writer, s site, pos sunpath.SunPosition, orient sunpath.PanelOrientation) {
	if s.Name != "" {
		fmt.Fprintf(w, "Site: %s\n", s.Name)
	}
	fmt.Fprintf(w, "Sun for lat=%.6f lon=%.6f\n", s.Coord.Latitude, s.Coord.Longitude)
	fmt.Fprintf(w, "Time: %s (%s)\n\n", s.Instant.Local().Format("2006-01-02 15:04"), s.Zone)

	switch pos.Condition {
	case sunpath.PolarDay:
		fmt.Fprintln(w, "Sunrise:    -- (polar day, sun stays up)")
		fmt.Fprintln(w, "Sunset:     --")
	case sunpath.PolarNight:
		fmt.Fprintln(w, "Sunrise:    -- (polar night, sun stays down)")
		fmt.Fprintln(w, "Sunset:     --")
	default:
		fmt.Fprintf(w, "Sunrise:    %s  (az %.1f°)\n", export.FormatClock(pos.SunriseMinutes), pos.AzimuthAtSunriseDeg)
		fmt.Fprintf(w, "Sunset:     %s  (az %.1f°)\n", export.FormatClock(pos.SunsetMinutes), pos.AzimuthAtSunsetDeg)
	}
	fmt.Fprintf(w, "Solar noon: %s  (max elevation %.1f°)\n", export.FormatClock(pos.SolarNoonMinutes), pos.MaxElevationDeg)
	fmt.Fprintf(w, "Daylight:   %.2f h\n", pos.DaylightHours)
	fmt.Fprintf(w, "Declination: %.2f°\n\n", pos.DeclinationDeg)

	fmt.Fprintf(w, "Now: azimuth %.1f°, elevation %.1f°\n", pos.CurrentAzimuthDeg, pos.CurrentElevationDeg)
	fmt.Fprintf(w, "Panel: tilt %.1f°, facing %.0f°\n", orient.TiltDeg, orient.AzimuthDeg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
