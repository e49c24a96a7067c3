package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		days int
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export site survey rows as CSV",
		Long: `Writes one CSV row per day starting at the site instant, keeping the same
clock time each day. Each row carries sunrise, solar noon, sunset, day
length, the sun position at that time and the panel recommendation.

Example:
  sunpath export --site phoenix --time 2025-01-01T09:00 --days 365 -o phoenix.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("%w: --days must be at least 1, got %d", sunpath.ErrInvalidInput, days)
			}

			s, err := a.resolveSite(cmd)
			if err != nil {
				return err
			}
			orient, err := sunpath.OptimalOrientation(s.Coord)
			if err != nil {
				return err
			}

			start := s.Instant.Time.In(s.Zone)
			snapshots := make([]export.Snapshot, 0, days)
			for d := 0; d < days; d++ {
				// AddDate keeps the wall clock, so DST changes move the offset.
				inst := sunpath.NewInstant(start.AddDate(0, 0, d))
				pos, err := sunpath.ComputeSunPosition(inst, s.Coord)
				if err != nil {
					return fmt.Errorf("day %d: %w", d, err)
				}
				snapshots = append(snapshots, export.Snapshot{
					Site:        s.Name,
					Coordinate:  s.Coord,
					Instant:     inst,
					Position:    pos,
					Orientation: orient,
				})
			}
			a.logger.Debug("Exporting snapshots", zap.Int("rows", len(snapshots)))

			return withOutput(cmd, out, func(w io.Writer) error {
				return export.WriteCSV(w, snapshots)
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "number of consecutive days to export")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output CSV file (default stdout)")
	return cmd
}
