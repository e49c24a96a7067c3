package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/render"
)

func newCompassCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "compass",
		Short: "Draw the sun path on a polar compass diagram (SVG)",
		Long: `Projects the day's path, sunrise/sunset markers and the current sun onto
a compass diagram with north at the top, and writes it as SVG.

Example:
  sunpath compass --site santiago --time 2025-12-21 -o santiago.svg`,
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
			samples, err := sunpath.SampleTrajectory(pos, s.Coord, a.cfg.Trajectory.Steps)
			if err != nil {
				return err
			}

			policy, err := a.cfg.Compass.Policy()
			if err != nil {
				return err
			}
			frame := render.NewFrame(a.cfg.Compass.Size, a.cfg.Compass.Radius, policy)
			frame.Position = pos
			frame.Path = samples
			frame.Title = fmt.Sprintf("%s %s", s.Name, s.Instant.Local().Format("2006-01-02 15:04"))

			return withOutput(cmd, out, func(w io.Writer) error {
				return render.Compass(w, frame)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output SVG file (default stdout)")
	return cmd
}
