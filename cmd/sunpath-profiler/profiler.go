package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath"
)

// profile holds what one run compares and accumulates.
type profile struct {
	Coord    sunpath.GeoCoordinate
	Loc      *time.Location
	Twilight *sunpath.TwilightKind // nil compares sunrise/sunset
	Logger   *zap.Logger

	rise, set             stats
	riseSigned, setSigned signedStats
	processed, skipped    int
}

func (p *profile) mode() string {
	if p.Twilight == nil {
		return "SUNRISE/SUNSET"
	}
	switch *p.Twilight {
	case sunpath.TwilightCivil:
		return "CIVIL TWILIGHT"
	case sunpath.TwilightNautical:
		return "NAUTICAL TWILIGHT"
	case sunpath.TwilightAstronomical:
		return "ASTRONOMICAL TWILIGHT"
	default:
		return "UNKNOWN TWILIGHT"
	}
}

func parseTwilight(s string) (*sunpath.TwilightKind, error) {
	var k sunpath.TwilightKind
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "civil":
		k = sunpath.TwilightCivil
	case "nautical":
		k = sunpath.TwilightNautical
	case "astronomical":
		k = sunpath.TwilightAstronomical
	default:
		return nil, fmt.Errorf("unknown twilight kind %q (use civil, nautical, or astronomical)", s)
	}
	return &k, nil
}

// events computes our rise and set (or dawn and dusk) for the local date of
// day, evaluated at local noon.
func (p *profile) events(day time.Time) (rise, set time.Time, err error) {
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, p.Loc)
	inst := sunpath.NewInstant(noon)

	pos, err := sunpath.ComputeSunPosition(inst, p.Coord)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if p.Twilight != nil {
		w, err := sunpath.TwilightFor(pos, p.Coord, *p.Twilight)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return inst.ClockAt(w.StartMinutes), inst.ClockAt(w.EndMinutes), nil
	}

	if !pos.HasRiseSet() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", sunpath.ErrNoRiseNoSet, pos.Condition)
	}
	return inst.ClockAt(pos.SunriseMinutes), inst.ClockAt(pos.SunsetMinutes), nil
}

// run compares every row, writing per-row errors to out when non-nil.
func (p *profile) run(rows []refRow, out *csv.Writer, verbose io.Writer) error {
	if out != nil {
		if err := out.Write([]string{"date", "mode", "rise_err", "set_err", "rise_signed", "set_signed"}); err != nil {
			return fmt.Errorf("failed to write outcsv header: %w", err)
		}
	}

	for _, row := range rows {
		dateStr := row.Date.Format("2006-01-02")

		gotRise, gotSet, err := p.events(row.Date)
		if err != nil {
			level := p.Logger.Warn
			if errors.Is(err, sunpath.ErrNoRiseNoSet) {
				level = p.Logger.Debug
			}
			level("Skipping date", zap.String("date", dateStr), zap.Error(err))
			p.skipped++
			continue
		}
		p.processed++

		riseErr := diffMinutes(gotRise, row.Rise)
		setErr := diffMinutes(gotSet, row.Set)
		riseSigned := diffMinutesSigned(gotRise, row.Rise)
		setSigned := diffMinutesSigned(gotSet, row.Set)

		p.rise.add(riseErr)
		p.set.add(setErr)
		p.riseSigned.add(riseSigned)
		p.setSigned.add(setSigned)

		if verbose != nil {
			fmt.Fprintf(verbose, "%s %s: rise err=%.2f min (got=%s ref=%s), set err=%.2f min (got=%s ref=%s)\n",
				dateStr, p.mode(),
				riseErr, gotRise.In(p.Loc).Format("15:04"), row.Rise.Format("15:04"),
				setErr, gotSet.In(p.Loc).Format("15:04"), row.Set.Format("15:04"))
		}

		if out != nil {
			rec := []string{
				dateStr,
				p.mode(),
				fmt.Sprintf("%.6f", riseErr),
				fmt.Sprintf("%.6f", setErr),
				fmt.Sprintf("%.6f", riseSigned),
				fmt.Sprintf("%.6f", setSigned),
			}
			if err := out.Write(rec); err != nil {
				return fmt.Errorf("%s: failed to write outcsv: %w", dateStr, err)
			}
		}
	}

	if out != nil {
		out.Flush()
		return out.Error()
	}
	return nil
}

func (p *profile) summary(w io.Writer) {
	fmt.Fprintln(w, "=== sunpath profiler summary ===")
	fmt.Fprintf(w, "Mode:    %s\n", p.mode())
	fmt.Fprintf(w, "Lat/Lon: %.4f / %.4f\n", p.Coord.Latitude, p.Coord.Longitude)
	fmt.Fprintf(w, "TZ:      %s\n", p.Loc.String())
	fmt.Fprintf(w, "Rows:    %d (processed), %d skipped\n", p.processed, p.skipped)

	if p.rise.count == 0 {
		fmt.Fprintln(w, "No valid rows to compute stats.")
		return
	}

	printStats(w, "Rise error (minutes):", p.rise, "avg", p.rise.avg())
	printStats(w, "Set error (minutes):", p.set, "avg", p.set.avg())
	printStats(w, "Rise signed error (minutes, ours - ref):", p.riseSigned.stats, "mean", p.riseSigned.mean())
	printStats(w, "Set signed error (minutes, ours - ref):", p.setSigned.stats, "mean", p.setSigned.mean())
}

func printStats(w io.Writer, title string, s stats, centerName string, center float64) {
	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintf(w, "  count: %d\n", s.count)
	fmt.Fprintf(w, "  min:   %.3f\n", s.min)
	fmt.Fprintf(w, "  max:   %.3f\n", s.max)
	fmt.Fprintf(w, "  %-6s %.3f\n", centerName+":", center)
}
