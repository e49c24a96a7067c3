// Command sunpath-profiler measures how far the simplified solar model is
// from a reference ephemeris over a range of dates. The reference comes from
// a date,rise,set CSV (almanac tables, observatory exports) or, with
// --from/--to, from the go-sunrise almanac algorithm.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/logging"
)

type options struct {
	lat, lon float64
	tzName   string
	refCSV   string
	from, to string
	twilight string
	outCSV   string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "sunpath-profiler",
		Short: "Profile sunrise/sunset error against a reference ephemeris",
		Long: `Compares the simplified model against reference rise and set times and
prints absolute and signed error statistics in minutes.

Examples:
  sunpath-profiler --lat 33.4484 --lon -112.074 --tz America/Phoenix --refcsv usno-2025.csv
  sunpath-profiler --lat -33.45 --lon -70.66 --tz America/Santiago --from 2025-01-01 --to 2025-12-31 --outcsv errs.csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, o)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&o.lat, "lat", 0, "latitude in degrees (north positive)")
	f.Float64Var(&o.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	f.StringVar(&o.tzName, "tz", "UTC", "IANA time zone name (e.g. America/Phoenix)")
	f.StringVar(&o.refCSV, "refcsv", "", "path to reference ephemeris CSV file (date,rise,set)")
	f.StringVar(&o.from, "from", "", "first date YYYY-MM-DD when generating the reference")
	f.StringVar(&o.to, "to", "", "last date YYYY-MM-DD when generating the reference")
	f.StringVar(&o.twilight, "twilight", "", "twilight kind: civil, nautical, astronomical (CSV rise/set read as dawn/dusk)")
	f.StringVar(&o.outCSV, "outcsv", "", "optional path to write per-row error CSV")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "print per-day errors in addition to the summary")

	return cmd
}

func runProfile(cmd *cobra.Command, o options) error {
	logger, err := logging.New("info", "console", o.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loc, err := time.LoadLocation(o.tzName)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", o.tzName, err)
	}
	coord := sunpath.GeoCoordinate{Latitude: o.lat, Longitude: o.lon}
	if err := coord.Validate(); err != nil {
		return err
	}
	if o.lat == 0 && o.lon == 0 {
		logger.Warn("lat=0 lon=0 (Gulf of Guinea). Did you mean to set --lat/--lon?")
	}

	twilight, err := parseTwilight(o.twilight)
	if err != nil {
		return err
	}

	rows, skipped, err := loadRows(o, coord, loc, logger)
	if err != nil {
		return err
	}

	p := &profile{Coord: coord, Loc: loc, Twilight: twilight, Logger: logger, skipped: skipped}

	var outWriter *csv.Writer
	if o.outCSV != "" {
		outFile, err := os.Create(o.outCSV)
		if err != nil {
			return fmt.Errorf("failed to create outcsv %q: %w", o.outCSV, err)
		}
		defer outFile.Close()
		outWriter = csv.NewWriter(outFile)
	}

	var verbose io.Writer
	if o.verbose {
		verbose = cmd.OutOrStdout()
	}
	if err := p.run(rows, outWriter, verbose); err != nil {
		return err
	}

	p.summary(cmd.OutOrStdout())
	return nil
}

func loadRows(o options, coord sunpath.GeoCoordinate, loc *time.Location, logger *zap.Logger) ([]refRow, int, error) {
	switch {
	case o.refCSV != "" && (o.from != "" || o.to != ""):
		return nil, 0, fmt.Errorf("use either --refcsv or --from/--to, not both")

	case o.refCSV != "":
		f, err := os.Open(o.refCSV)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open refcsv %q: %w", o.refCSV, err)
		}
		defer f.Close()
		return readRefCSV(f, loc, logger)

	case o.from != "" && o.to != "":
		if o.twilight != "" {
			return nil, 0, fmt.Errorf("--twilight needs a --refcsv; the generated reference has sunrise/sunset only")
		}
		from, err := time.ParseInLocation("2006-01-02", o.from, loc)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid --from: %w", err)
		}
		to, err := time.ParseInLocation("2006-01-02", o.to, loc)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid --to: %w", err)
		}
		if to.Before(from) {
			return nil, 0, fmt.Errorf("--to %s is before --from %s", o.to, o.from)
		}
		rows, skipped := generateRef(coord, from, to, logger)
		return rows, skipped, nil

	default:
		return nil, 0, fmt.Errorf("missing reference: give --refcsv or both --from and --to")
	}
}
