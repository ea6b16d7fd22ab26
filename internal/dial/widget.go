package dial

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/asheshgoplani/fandial/internal/logging"
)

var dialLog = logging.ForComponent(logging.CompDial)

// Labels resolves label identifiers to display text.
type Labels interface {
	Label(id LabelID) string
}

// LabelsFunc adapts a function to Labels.
type LabelsFunc func(id LabelID) string

// Label calls f.
func (f LabelsFunc) Label(id LabelID) string { return f(id) }

// Config is read once by New.
type Config struct {
	// LowColor, MediumColor and HighColor are required.
	LowColor    Color
	MediumColor Color
	HighColor   Color

	// NeutralColor is the Off disc color (default: Neutral)
	NeutralColor Color

	// MarkerColor is the marker fill (default: MarkerBlack)
	MarkerColor Color

	Layout         Layout
	LabelOffset    float64
	MarkerOffset   float64
	RadiusFraction float64
}

// DefaultConfig returns the reference layout with all option colors unset.
func DefaultConfig() Config {
	return Config{
		NeutralColor:   Neutral,
		MarkerColor:    MarkerBlack,
		Layout:         ReferenceLayout(),
		LabelOffset:    ReferenceLabelOffset,
		MarkerOffset:   ReferenceMarkerOffset,
		RadiusFraction: ReferenceRadiusFraction,
	}
}

func (c Config) colorMap() map[Option]Color {
	return map[Option]Color{
		Low:    c.LowColor,
		Medium: c.MediumColor,
		High:   c.HighColor,
	}
}

// Validate reports the first configuration error.
func (c Config) Validate() error {
	if _, err := NewColorTable(c.NeutralColor, c.colorMap()); err != nil {
		return err
	}
	if c.Layout.SlotWidth <= 0 || math.IsNaN(c.Layout.SlotWidth) || math.IsInf(c.Layout.SlotWidth, 0) {
		return fmt.Errorf("%w: slot width %v must be positive", ErrInvalidLayout, c.Layout.SlotWidth)
	}
	if math.IsNaN(c.Layout.StartAngle) || math.IsInf(c.Layout.StartAngle, 0) {
		return fmt.Errorf("%w: start angle %v is not finite", ErrInvalidLayout, c.Layout.StartAngle)
	}
	if !(c.RadiusFraction > 0 && c.RadiusFraction <= 1) {
		return fmt.Errorf("%w: radius fraction %v must be in (0, 1]", ErrInvalidLayout, c.RadiusFraction)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"label offset", c.LabelOffset},
		{"marker offset", c.MarkerOffset},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidLayout, v.name, v.value)
		}
	}
	if c.LabelOffset <= c.MarkerOffset {
		return fmt.Errorf("%w: label offset %v must exceed marker offset %v",
			ErrInvalidLayout, c.LabelOffset, c.MarkerOffset)
	}
	return nil
}

// Widget is the dial: state, geometry and accessibility, driven by the host.
type Widget struct {
	state     *StateMachine
	geometry  Geometry
	fraction  float64
	colors    ColorTable
	renderer  Renderer
	labels    Labels
	decorator AccessibilityDecorator

	description string
	invalidate  func()
}

// WidgetOption customises a Widget at construction.
type WidgetOption func(*Widget)

// WithDecorator replaces the default ClickActionDecorator.
func WithDecorator(d AccessibilityDecorator) WidgetOption {
	return func(w *Widget) { w.decorator = d }
}

// WithInvalidate registers the host's redraw request.
func WithInvalidate(fn func()) WidgetOption {
	return func(w *Widget) { w.invalidate = fn }
}

// New validates cfg and returns a widget positioned at the first option.
func New(cfg Config, labels Labels, opts ...WidgetOption) (*Widget, error) {
	if labels == nil {
		return nil, ErrNoLabels
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	colors, err := NewColorTable(cfg.NeutralColor, cfg.colorMap())
	if err != nil {
		return nil, err
	}

	w := &Widget{
		state:    NewStateMachine(),
		fraction: cfg.RadiusFraction,
		colors:   colors,
		renderer: Renderer{
			Layout:       cfg.Layout,
			LabelOffset:  cfg.LabelOffset,
			MarkerOffset: cfg.MarkerOffset,
			MarkerColor:  cfg.MarkerColor,
		},
		labels: labels,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.decorator == nil {
		w.decorator = ClickActionDecorator{Labels: labels}
	}
	w.updateDescription()
	return w, nil
}

// SetSize recomputes geometry for a new drawable size.
func (w *Widget) SetSize(width, height float64) {
	w.geometry = NewGeometry(width, height, w.fraction)
	dialLog.Debug("size_changed",
		slog.Float64("width", width),
		slog.Float64("height", height),
		slog.Float64("radius", w.geometry.Radius))
}

// Geometry returns the geometry of the last size change.
func (w *Widget) Geometry() Geometry {
	return w.geometry
}

// Current returns the selected option.
func (w *Widget) Current() Option {
	return w.state.Current()
}

// Activate advances the selection, refreshes the description and requests
// a redraw. It is the only path that changes the selection.
func (w *Widget) Activate() Option {
	prev := w.state.Current()
	wrapped := w.state.AtLast()
	next := w.state.Advance()
	w.updateDescription()
	dialLog.Debug("activated",
		slog.String("from", prev.String()),
		slog.String("to", next.String()),
		slog.Bool("wrapped", wrapped))
	logging.Aggregate(logging.CompDial, "activate", slog.String("option", next.String()))
	if w.invalidate != nil {
		w.invalidate()
	}
	return next
}

// TurnTo activates the dial until o is selected, as repeated clicks would.
func (w *Widget) TurnTo(o Option) {
	o.mustBeValid()
	for w.state.Current() != o {
		w.Activate()
	}
}

// Label returns the display text of o.
func (w *Widget) Label(o Option) string {
	return w.labels.Label(o.Label())
}

func (w *Widget) updateDescription() {
	w.description = w.Label(w.state.Current())
}

// Description is the accessibility description of the current option.
func (w *Widget) Description() string {
	return w.description
}

// AccessibilityAction returns the click action labeled for the current option.
func (w *Widget) AccessibilityAction() Action {
	info := w.AccessibilityInfo()
	if a, ok := info.Action(ActionClick); ok {
		return a
	}
	return Action{ID: ActionClick, Label: w.labels.Label(ActionPhrase(w.Current()))}
}

// AccessibilityInfo builds fresh accessibility info for the current state.
func (w *Widget) AccessibilityInfo() AccessibilityInfo {
	var info AccessibilityInfo
	w.InitializeAccessibilityInfo(&info)
	return info
}

// InitializeAccessibilityInfo fills info with the description and lets the
// decorator add actions.
func (w *Widget) InitializeAccessibilityInfo(info *AccessibilityInfo) {
	info.Description = w.description
	w.decorator.Decorate(info, w.state.Current())
}

// PerformAccessibilityAction runs the action with the given ID and reports
// whether it was handled.
func (w *Widget) PerformAccessibilityAction(id ActionID) bool {
	if id != ActionClick {
		return false
	}
	w.Activate()
	return true
}

// Render returns the draw commands for the current frame.
func (w *Widget) Render() []DrawCommand {
	logging.Aggregate(logging.CompDial, "render")
	return w.renderer.Render(w.state, w.geometry, w.colors, func(o Option) string {
		return w.Label(o)
	})
}
