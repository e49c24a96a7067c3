package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/export"
)

func newWindowsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "Show twilight, golden hour and blue hour windows",
		Long: `Lists dawn and dusk for civil (-6°), nautical (-12°) and astronomical (-18°)
twilight, plus the golden hour (-4° to +6°) and blue hour (-6° to -4°)
windows for the site's date. Windows that do not occur are shown as --.`,
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

			rows, err := crossingWindows(pos, s.Coord)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			printWindows(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}

// windowRow is one named interval on the site clock. Start and End are empty
// when the window does not occur.
type windowRow struct {
	Name  string `json:"name"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

var twilightKinds = []struct {
	name string
	kind sunpath.TwilightKind
}{
	{"civil twilight", sunpath.TwilightCivil},
	{"nautical twilight", sunpath.TwilightNautical},
	{"astronomical twilight", sunpath.TwilightAstronomical},
}

func crossingWindows(pos sunpath.SunPosition, coord sunpath.GeoCoordinate) ([]windowRow, error) {
	var rows []windowRow

	for _, tk := range twilightKinds {
		w, err := sunpath.TwilightFor(pos, coord, tk.kind)
		switch {
		case errors.Is(err, sunpath.ErrNoRiseNoSet):
			rows = append(rows, windowRow{Name: tk.name})
		case err != nil:
			return nil, err
		default:
			rows = append(rows, windowRow{
				Name:  tk.name,
				Start: export.FormatClock(w.StartMinutes),
				End:   export.FormatClock(w.EndMinutes),
			})
		}
	}

	phases := []struct {
		name string
		fn   func(sunpath.SunPosition, sunpath.GeoCoordinate) (sunpath.DaylightPhases, error)
	}{
		{"golden hour", sunpath.GoldenHourFor},
		{"blue hour", sunpath.BlueHourFor},
	}
	for _, ph := range phases {
		p, err := ph.fn(pos, coord)
		if err != nil && !errors.Is(err, sunpath.ErrNoRiseNoSet) {
			return nil, err
		}
		rows = append(rows,
			phaseRow(ph.name+" (morning)", p.Morning, p.HasMorning),
			phaseRow(ph.name+" (evening)", p.Evening, p.HasEvening))
	}
	return rows, nil
}

func phaseRow(name string, w sunpath.PhaseWindow, ok bool) windowRow {
	if !ok {
		return windowRow{Name: name}
	}
	return windowRow{
		Name:  name,
		Start: export.FormatClock(w.StartMinutes),
		End:   export.FormatClock(w.EndMinutes),
	}
}

func printWindows(w io.Writer, rows []windowRow) {
	for _, r := range rows {
		if r.Start == "" {
			fmt.Fprintf(w, "%-26s --\n", r.Name+":")
			continue
		}
		fmt.Fprintf(w, "%-26s %s - %s\n", r.Name+":", r.Start, r.End)
	}
}
