package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath/internal/export"
	"github.com/thurmanmarka/sunpath/internal/reference"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare sunrise and sunset against the reference almanac model",
		Long: `Computes sunrise and sunset with the simplified model and with the
go-sunrise almanac algorithm, and prints the signed differences in minutes
(ours minus reference).`,
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

			w := cmd.OutOrStdout()
			delta, ok := reference.Compare(s.Instant, s.Coord, pos)
			if !ok {
				fmt.Fprintf(w, "No comparison: %s\n", pos.Condition)
				return nil
			}
			a.logger.Debug("Reference delta", zap.Float64("rise_min", delta.Rise), zap.Float64("set_min", delta.Set))

			if a.jsonOut {
				return writeJSON(w, struct {
					Sunrise      string  `json:"sunrise"`
					Sunset       string  `json:"sunset"`
					RiseDeltaMin float64 `json:"rise_delta_min"`
					SetDeltaMin  float64 `json:"set_delta_min"`
				}{export.FormatClock(pos.SunriseMinutes), export.FormatClock(pos.SunsetMinutes), delta.Rise, delta.Set})
			}

			fmt.Fprintf(w, "Sunrise: %s  (%+.1f min vs reference)\n", export.FormatClock(pos.SunriseMinutes), delta.Rise)
			fmt.Fprintf(w, "Sunset:  %s  (%+.1f min vs reference)\n", export.FormatClock(pos.SunsetMinutes), delta.Set)
			return nil
		},
	}
}
