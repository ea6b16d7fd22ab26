package dial

import "math"

// Reference layout constants. They are visual tuning values, not derived.
const (
	// ReferenceStartAngle puts slot 0 in the lower left. Image coordinates
	// grow downward, so increasing angles run clockwise on screen.
	ReferenceStartAngle = 9 * math.Pi / 8

	// ReferenceSlotWidth is the angle between neighbouring options.
	ReferenceSlotWidth = math.Pi / 4

	// ReferenceLabelOffset pushes labels outward from the dial edge.
	ReferenceLabelOffset = 30.0

	// ReferenceMarkerOffset pulls the marker inward from the dial edge.
	ReferenceMarkerOffset = -35.0
)

// Point is a position in drawable units.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Layout maps options to angular slots on a circle.
type Layout struct {
	StartAngle float64
	SlotWidth  float64
}

// ReferenceLayout returns the layout of the stock dial.
func ReferenceLayout() Layout {
	return Layout{StartAngle: ReferenceStartAngle, SlotWidth: ReferenceSlotWidth}
}

// EvenSlotWidth returns the slot width that spreads n options around the
// full circle.
func EvenSlotWidth(n int) float64 {
	if n <= 0 {
		panic("dial: slot count must be positive")
	}
	return 2 * math.Pi / float64(n)
}

// Angle returns the angle in radians at the middle of the option's slot.
func (l Layout) Angle(o Option) float64 {
	return l.StartAngle + float64(o.Ordinal())*l.SlotWidth
}

// PositionFor returns the point at the given radius from center along the
// option's slot angle.
func (l Layout) PositionFor(o Option, radius float64, center Point) Point {
	angle := l.Angle(o)
	return center.Add(Point{
		X: radius * math.Cos(angle),
		Y: radius * math.Sin(angle),
	})
}
