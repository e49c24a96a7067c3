package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/export"
)

func newPathCmd(a *app) *cobra.Command {
	var (
		steps int
		out   string
	)

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Sample the day's sun path from sunrise to sunset",
		Long: `Writes steps+1 evenly spaced samples (time, azimuth, elevation) between
sunrise and sunset as CSV, or JSON with --json. Under polar day or night
there is no path and only the header is written.`,
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

			if !cmd.Flags().Changed("steps") {
				steps = a.cfg.Trajectory.Steps
			}
			samples, err := sunpath.SampleTrajectory(pos, s.Coord, steps)
			if err != nil {
				return err
			}
			a.logger.Debug("Sampled trajectory", zap.Int("steps", steps), zap.Int("samples", len(samples)))

			return withOutput(cmd, out, func(w io.Writer) error {
				if a.jsonOut {
					return writeJSON(w, samples)
				}
				return export.WriteTrajectoryCSV(w, samples)
			})
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 24, "number of intervals between sunrise and sunset")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// withOutput runs fn against the named file, or the command's stdout when
// path is empty.
func withOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
