package dial

import "math"

// ReferenceRadiusFraction scales the half-extent of the drawable area down to
// the dial's base radius.
const ReferenceRadiusFraction = 0.8

// Geometry is derived from the drawable size and only lives for one frame.
type Geometry struct {
	Width, Height float64
	Center        Point
	Radius        float64
}

// NewGeometry centers the dial in a width x height area. Non-positive sizes
// produce a zero radius.
func NewGeometry(width, height, radiusFraction float64) Geometry {
	g := Geometry{
		Width:  width,
		Height: height,
		Center: Point{X: width / 2, Y: height / 2},
	}
	if width <= 0 || height <= 0 || radiusFraction <= 0 {
		return g
	}
	g.Radius = math.Min(width, height) / 2 * radiusFraction
	return g
}

// Degenerate reports whether there is nothing to draw.
func (g Geometry) Degenerate() bool {
	return g.Radius <= 0
}
