package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/clock"
	"github.com/thurmanmarka/sunpath/internal/config"
	"github.com/thurmanmarka/sunpath/internal/location"
	"github.com/thurmanmarka/sunpath/internal/logging"
)

// app carries what every subcommand shares: flags, loaded configuration and
// the logger.
type app struct {
	// Global flags
	configPath string
	siteName   string
	lat        float64
	lon        float64
	tzName     string
	timeStr    string
	jsonOut    bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// clock is swapped in tests.
	clock clock.Clock
}

// site is a fully resolved survey location and instant.
type site struct {
	Name    string
	Coord   sunpath.GeoCoordinate
	Zone    *time.Location
	Instant sunpath.Instant
}

func newRootCmd() *cobra.Command {
	return (&app{}).command()
}

func (a *app) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sunpath",
		Short: "sunpath - sun path, sunrise/sunset and panel orientation for site surveys",
		Long: `sunpath computes the Sun's daily path for a solar-installation site visit:
sunrise, sunset, solar noon, day length, the current azimuth/elevation and
the recommended fixed-panel orientation. It can draw the path on a polar
compass diagram and export survey rows as CSV.

The site comes from sunpath.yaml (or --site preset), overridable with
--lat/--lon/--tz. The instant defaults to now on the site clock.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", config.DefaultPath, "path to the YAML config file")
	pf.StringVar(&a.siteName, "site", "", "named site preset from the config file")
	pf.Float64Var(&a.lat, "lat", 0, "latitude in degrees (north positive)")
	pf.Float64Var(&a.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	pf.StringVar(&a.tzName, "tz", "", "IANA time zone of the site clock (e.g. America/Mexico_City)")
	pf.StringVar(&a.timeStr, "time", "", "instant as RFC3339, 'YYYY-MM-DDTHH:MM' or 'YYYY-MM-DD' (defaults to now)")
	pf.BoolVar(&a.jsonOut, "json", false, "output as JSON")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newPositionCmd(a),
		newPathCmd(a),
		newCompassCmd(a),
		newWindowsCmd(a),
		newExportCmd(a),
		newCompareCmd(a),
	)

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.clock == nil {
		a.clock = clock.System{}
	}
	return nil
}

// resolveSite merges config, preset and flags, acquires the coordinate
// through the location boundary and pins the instant to the site clock.
func (a *app) resolveSite(cmd *cobra.Command) (site, error) {
	sc, err := a.cfg.LookupSite(a.siteName)
	if err != nil {
		return site{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("lat") {
		sc.Latitude = a.lat
	}
	if flags.Changed("lon") {
		sc.Longitude = a.lon
	}
	if flags.Changed("tz") {
		sc.Timezone = a.tzName
	}
	if sc.Latitude == 0 && sc.Longitude == 0 {
		a.logger.Warn("lat=0 lon=0 (Gulf of Guinea). Use --lat and --lon or a config site to set a real location.")
	}

	zone, err := sc.Zone()
	if err != nil {
		return site{}, err
	}

	timeout, err := a.cfg.LocationTimeout()
	if err != nil {
		return site{}, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fix, err := location.NewAcquirer(timeout, a.logger).Acquire(ctx, location.Static{
		Fix: location.Fix{Coordinate: sc.Coordinate()},
	})
	if err != nil {
		return site{}, err
	}

	var inst sunpath.Instant
	if a.timeStr == "" {
		inst = clock.Instant(clockIn{a.clock, zone})
	} else {
		inst, err = clock.ParseInstant(a.timeStr, zone)
		if err != nil {
			return site{}, fmt.Errorf("could not parse --time %q: %w", a.timeStr, err)
		}
	}

	a.logger.Debug("Resolved site",
		zap.String("site", sc.Name),
		zap.Float64("lat", fix.Coordinate.Latitude),
		zap.Float64("lon", fix.Coordinate.Longitude),
		zap.String("tz", zone.String()),
		zap.Time("instant", inst.Time),
		zap.Int("utc_offset_min", inst.UTCOffsetMinutes))

	return site{Name: sc.Name, Coord: fix.Coordinate, Zone: zone, Instant: inst}, nil
}

// compute runs the calculator for a resolved site.
func (a *app) compute(s site) (sunpath.SunPosition, error) {
	pos, err := sunpath.ComputeSunPosition(s.Instant, s.Coord)
	if err != nil {
		return sunpath.SunPosition{}, fmt.Errorf("error computing sun position: %w", err)
	}
	if !pos.HasRiseSet() {
		a.logger.Info("No sunrise or sunset on this date", zap.Stringer("condition", pos.Condition))
	}
	return pos, nil
}

// clockIn reports another clock's readings in a fixed location.
type clockIn struct {
	c   clock.Clock
	loc *time.Location
}

func (c clockIn) Now() time.Time { return c.c.Now().In(c.loc) }
