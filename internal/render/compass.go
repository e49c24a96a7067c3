// Package render draws the sun-path compass diagram as SVG.
//
// Each call draws one complete frame from the parameters it is given; there
// is no drawing state carried between frames. A live display re-renders on
// every refresh with a fresh SunPosition.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/thurmanmarka/sunpath"
)

// Frame is everything needed to draw one compass diagram.
type Frame struct {
	Size      int               // width and height in px
	Projector sunpath.Projector // center and radius of the horizon circle
	Position  sunpath.SunPosition
	Path      []sunpath.TrajectorySample
	Title     string
}

// NewFrame centers a projector of the given radius in a square canvas.
func NewFrame(size int, radius float64, policy sunpath.BelowHorizon) Frame {
	half := float64(size) / 2
	return Frame{
		Size: size,
		Projector: sunpath.Projector{
			Center:       sunpath.PlotPoint{X: half, Y: half},
			Radius:       radius,
			BelowHorizon: policy,
		},
	}
}

var cardinals = []struct {
	label string
	az    float64
}{
	{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270},
}

// Compass writes the frame as a standalone SVG document.
func Compass(w io.Writer, f Frame) error {
	if f.Size <= 0 {
		return fmt.Errorf("%w: frame size %d", sunpath.ErrInvalidInput, f.Size)
	}

	p := f.Projector
	c := p.Center
	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		f.Size, f.Size, f.Size, f.Size)
	if f.Title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", escape(f.Title))
	}

	// Horizon rim and elevation rings.
	fmt.Fprintf(&b, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#555" stroke-width="2"/>`+"\n", c.X, c.Y, p.Radius)
	for _, elev := range []float64{30, 60} {
		fmt.Fprintf(&b, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#bbb" stroke-dasharray="4 4"/>`+"\n",
			c.X, c.Y, p.Radius*(1-elev/90))
	}

	// Labels sit just outside the rim.
	labels := sunpath.Projector{Center: c, Radius: p.Radius + 14}
	for _, cd := range cardinals {
		pt, err := labels.Project(cd.az, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-size="14">%s</text>`+"\n",
			pt.X, pt.Y, cd.label)
	}

	if len(f.Path) > 0 {
		points, err := p.ProjectPath(f.Path)
		if err != nil {
			return err
		}

		coords := make([]string, len(points))
		for i, pt := range points {
			coords[i] = fmt.Sprintf("%.2f,%.2f", pt.X, pt.Y)
		}
		fmt.Fprintf(&b, `  <polyline points="%s" fill="none" stroke="#f39c12" stroke-width="3"/>`+"\n", strings.Join(coords, " "))

		rise, set := points[0], points[len(points)-1]
		fmt.Fprintf(&b, `  <circle class="sunrise" cx="%.2f" cy="%.2f" r="5" fill="#e67e22"/>`+"\n", rise.X, rise.Y)
		fmt.Fprintf(&b, `  <circle class="sunset" cx="%.2f" cy="%.2f" r="5" fill="#c0392b"/>`+"\n", set.X, set.Y)
	}

	if f.Position.CurrentElevationDeg > 0 {
		now, err := p.Project(f.Position.CurrentAzimuthDeg, f.Position.CurrentElevationDeg)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, `  <circle class="sun" cx="%.2f" cy="%.2f" r="9" fill="#f1c40f" stroke="#e67e22" stroke-width="2"/>`+"\n", now.X, now.Y)
	}

	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
