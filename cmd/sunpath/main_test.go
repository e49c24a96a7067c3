package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/sunpath/internal/clock"
)

const testConfig = `
site:
  name: cdmx
  latitude: 19.4326
  longitude: -99.1332
  timezone: UTC
sites:
  longyearbyen:
    latitude: 78.22
    longitude: 15.65
    timezone: UTC
  santiago:
    latitude: -33.45
    longitude: -70.66
    timezone: UTC
logging:
  level: error
`

func writeConfig(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"SUNPATH_LAT", "SUNPATH_LON", "SUNPATH_TZ", "SUNPATH_STEPS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "sunpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

// run executes the CLI with a fixed clock and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{clock: clock.Fixed(time.Date(2025, time.June, 21, 16, 30, 0, 0, time.UTC))}
	cmd := a.command()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestPosition_JSON(t *testing.T) {
	out, err := run(t, "position", "--json", "--time", "2025-06-21T10:30:00-06:00")
	require.NoError(t, err)

	var got positionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "cdmx", got.Site)
	assert.Equal(t, -360, got.UTCOffsetMinutes)
	assert.Equal(t, "normal", got.Condition)
	require.NotNil(t, got.Sunrise)
	require.NotNil(t, got.Sunset)
	assert.Equal(t, "12:38", got.SolarNoon)
	assert.Equal(t, 172, got.Position.DayOfYear)
	assert.InDelta(t, 19.4326, got.Panel.TiltDeg, 1e-9)
	assert.Equal(t, 180.0, got.Panel.AzimuthDeg)
}

func TestPosition_UsesClockWhenNoTime(t *testing.T) {
	out, err := run(t, "position", "--json")
	require.NoError(t, err)

	var got positionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2025-06-21T16:30:00Z", got.Time)
	assert.Equal(t, 0, got.UTCOffsetMinutes)
}

func TestPosition_PolarPreset(t *testing.T) {
	out, err := run(t, "position", "--site", "longyearbyen", "--time", "2025-12-21")
	require.NoError(t, err)

	assert.Contains(t, out, "Site: longyearbyen")
	assert.Contains(t, out, "polar night")
	assert.Contains(t, out, "Daylight:   0.00 h")
}

func TestPosition_PolarJSONHasNoSunrise(t *testing.T) {
	out, err := run(t, "position", "--json", "--site", "longyearbyen", "--time", "2025-12-21")
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.NotContains(t, fields, "sunrise")
	assert.Equal(t, "polar night", fields["condition"])

	raw, ok := fields["raw"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, raw, "sunrise_minutes")
	assert.Nil(t, raw["sunrise_minutes"])
	assert.Nil(t, raw["sunset_minutes"])
	assert.Equal(t, "polar night", raw["condition"])
}

func TestPosition_FlagOverridesPreset(t *testing.T) {
	out, err := run(t, "position", "--json", "--site", "santiago", "--lat", "40", "--time", "2025-06-21")
	require.NoError(t, err)

	var got positionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 40.0, got.Latitude)
	assert.Equal(t, -70.66, got.Longitude)
}

func TestPath_CSV(t *testing.T) {
	out, err := run(t, "path", "--steps", "4", "--time", "2025-06-21")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "time,minute_of_day,azimuth_deg,elevation_deg", lines[0])
}

func TestPath_PolarDayHeaderOnly(t *testing.T) {
	out, err := run(t, "path", "--site", "longyearbyen", "--time", "2025-06-21")
	require.NoError(t, err)
	assert.Equal(t, "time,minute_of_day,azimuth_deg,elevation_deg", strings.TrimSpace(out))
}

func TestPath_NegativeSteps(t *testing.T) {
	_, err := run(t, "path", "--steps", "-1", "--time", "2025-06-21")
	assert.Error(t, err)
}

func TestPath_WritesFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "path.csv")
	_, err := run(t, "path", "--time", "2025-06-21", "-o", dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	// default steps from config: 24 intervals plus header
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 26)
}

func TestCompass_SVG(t *testing.T) {
	out, err := run(t, "compass", "--site", "santiago", "--time", "2025-12-21T12:00")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, "santiago 2025-12-21 12:00")
}

func TestWindows(t *testing.T) {
	out, err := run(t, "windows", "--time", "2025-06-21")
	require.NoError(t, err)

	for _, name := range []string{"civil twilight:", "nautical twilight:", "astronomical twilight:", "golden hour (morning):", "blue hour (evening):"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, " --\n")
}

func TestWindows_PolarNightJSON(t *testing.T) {
	out, err := run(t, "windows", "--json", "--site", "longyearbyen", "--time", "2025-12-21")
	require.NoError(t, err)

	var rows []windowRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 7)
	// At 78°N in December the Sun peaks near -11.7°: nautical twilight
	// exists, civil twilight and golden hour do not.
	assert.Empty(t, rows[0].Start)
	assert.NotEmpty(t, rows[1].Start)
	assert.Empty(t, rows[3].Start)
	assert.Empty(t, rows[4].Start)
}

func TestExport_Days(t *testing.T) {
	out, err := run(t, "export", "--days", "3", "--time", "2025-06-21T09:00")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "site,latitude,longitude,date,time"))
	assert.Contains(t, lines[1], "2025-06-21")
	assert.Contains(t, lines[3], "2025-06-23")
}

func TestExport_InvalidDays(t *testing.T) {
	_, err := run(t, "export", "--days", "0")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	out, err := run(t, "compare", "--time", "2025-06-21")
	require.NoError(t, err)
	assert.Contains(t, out, "vs reference")
}

func TestUnknownSite(t *testing.T) {
	_, err := run(t, "position", "--site", "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown site")
}

func TestBadTime(t *testing.T) {
	_, err := run(t, "position", "--time", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse --time")
}
