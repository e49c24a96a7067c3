package sunpath

import (
	"fmt"
	"math"

	"github.com/thurmanmarka/sunpath/internal/timeutil"
)

// PlotPoint is a 2D drawing coordinate. Y grows downward, as on a canvas or
// SVG surface.
type PlotPoint struct {
	X float64
	Y float64
}

// BelowHorizon selects how samples with negative elevation are placed.
type BelowHorizon int

const (
	// ClampToRim draws every below-horizon point on the outer rim. A sun
	// barely below the horizon and one far below it coincide.
	ClampToRim BelowHorizon = iota

	// ExtendBeyondRim keeps the linear mapping below the horizon so those
	// points land outside the circle, proportionally to their depth.
	ExtendBeyondRim
)

// Projector maps (azimuth, elevation) pairs onto a polar compass diagram of
// fixed center and radius. North is at the top, east to the right. The zero
// value clamps below-horizon points to the rim.
type Projector struct {
	Center       PlotPoint
	Radius       float64
	BelowHorizon BelowHorizon
}

// Project places one sky position on the diagram:
//
//	r     = radius * (1 - max(0, elevation)/90)
//	angle = azimuth - 90°
//
// so that elevation 90° lands on the center whatever the azimuth.
func (p Projector) Project(azimuthDeg, elevationDeg float64) (PlotPoint, error) {
	if !isFinite(azimuthDeg) || !isFinite(elevationDeg) {
		return PlotPoint{}, fmt.Errorf("%w: non-finite azimuth %v / elevation %v", ErrInvalidInput, azimuthDeg, elevationDeg)
	}
	if !isFinite(p.Center.X) || !isFinite(p.Center.Y) || !isFinite(p.Radius) || p.Radius < 0 {
		return PlotPoint{}, fmt.Errorf("%w: projector center %v radius %v", ErrInvalidInput, p.Center, p.Radius)
	}

	elev := elevationDeg
	switch p.BelowHorizon {
	case ClampToRim:
		elev = math.Max(0, elev)
	case ExtendBeyondRim:
		// linear mapping continues past the rim
	default:
		return PlotPoint{}, fmt.Errorf("%w: unknown below-horizon policy %d", ErrInvalidInput, p.BelowHorizon)
	}
	r := p.Radius * (1 - elev/90)
	if r == 0 {
		return p.Center, nil
	}

	angle := timeutil.Deg2Rad(azimuthDeg - 90)
	return PlotPoint{
		X: p.Center.X + r*math.Cos(angle),
		Y: p.Center.Y + r*math.Sin(angle),
	}, nil
}

// ProjectSample projects a trajectory sample.
func (p Projector) ProjectSample(s TrajectorySample) (PlotPoint, error) {
	return p.Project(s.AzimuthDeg, s.ElevationDeg)
}

// ProjectPath projects every sample in order. It stops at the first invalid
// sample.
func (p Projector) ProjectPath(samples []TrajectorySample) ([]PlotPoint, error) {
	points := make([]PlotPoint, 0, len(samples))
	for i, s := range samples {
		pt, err := p.ProjectSample(s)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		points = append(points, pt)
	}
	return points, nil
}

// Project maps a sky position onto a compass diagram of the given center and
// radius, clamping below-horizon positions to the rim.
func Project(azimuthDeg, elevationDeg float64, center PlotPoint, radius float64) (PlotPoint, error) {
	return Projector{Center: center, Radius: radius}.Project(azimuthDeg, elevationDeg)
}
