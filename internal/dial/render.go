package dial

// Align is the horizontal anchoring of a text command.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// DrawCommand is one instruction for the host's painter. Commands are
// produced per frame and never retained.
type DrawCommand interface {
	isDrawCommand()
}

// Circle draws a filled circle.
type Circle struct {
	Center Point
	Radius float64
	Color  Color
}

// Text draws a string anchored at Position.
type Text struct {
	Position Point
	Text     string
	Align    Align
}

func (Circle) isDrawCommand() {}
func (Text) isDrawCommand()   {}

// LabelFunc resolves the display text of an option.
type LabelFunc func(Option) string

// markerDivisor sizes the marker relative to the base radius.
const markerDivisor = 12

// Renderer projects dial state and geometry into draw commands.
type Renderer struct {
	Layout       Layout
	LabelOffset  float64
	MarkerOffset float64
	MarkerColor  Color
}

// ReferenceRenderer returns a renderer using the stock layout and offsets.
func ReferenceRenderer() Renderer {
	return Renderer{
		Layout:       ReferenceLayout(),
		LabelOffset:  ReferenceLabelOffset,
		MarkerOffset: ReferenceMarkerOffset,
		MarkerColor:  MarkerBlack,
	}
}

// MarkerRadius is the distance of the marker from the center for a base
// radius. It never goes below zero.
func (r Renderer) MarkerRadius(base float64) float64 {
	return max(base+r.MarkerOffset, 0)
}

// LabelRadius is the distance of the labels from the center.
func (r Renderer) LabelRadius(base float64) float64 {
	return base + r.LabelOffset
}

// Render returns the disc, the marker and one label per option, in that
// order. A degenerate geometry yields no commands.
func (r Renderer) Render(state State, g Geometry, colors ColorTable, labels LabelFunc) []DrawCommand {
	if g.Degenerate() {
		return nil
	}
	current := state.Current()

	cmds := make([]DrawCommand, 0, 2+NumOptions)
	cmds = append(cmds, Circle{
		Center: g.Center,
		Radius: g.Radius,
		Color:  colors.For(current),
	})

	markerColor := r.MarkerColor
	if !markerColor.IsSet() {
		markerColor = MarkerBlack
	}
	cmds = append(cmds, Circle{
		Center: r.Layout.PositionFor(current, r.MarkerRadius(g.Radius), g.Center),
		Radius: g.Radius / markerDivisor,
		Color:  markerColor,
	})

	labelRadius := r.LabelRadius(g.Radius)
	for _, o := range allOptions {
		cmds = append(cmds, Text{
			Position: r.Layout.PositionFor(o, labelRadius, g.Center),
			Text:     labels(o),
			Align:    AlignCenter,
		})
	}
	return cmds
}
