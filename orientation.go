package sunpath

import "math"

// PanelOrientation is a fixed-mount panel recommendation.
type PanelOrientation struct {
	TiltDeg    float64 // from horizontal
	AzimuthDeg float64 // direction the panel faces, degrees from north
}

// OptimalOrientation returns the rule-of-thumb year-round orientation for a
// fixed panel: tilt equal to the absolute latitude, facing the equator
// (south in the northern hemisphere, north in the southern one).
func OptimalOrientation(coord GeoCoordinate) (PanelOrientation, error) {
	if err := coord.Validate(); err != nil {
		return PanelOrientation{}, err
	}

	o := PanelOrientation{TiltDeg: math.Abs(coord.Latitude), AzimuthDeg: 180}
	if coord.Latitude < 0 {
		o.AzimuthDeg = 0
	}
	return o, nil
}
