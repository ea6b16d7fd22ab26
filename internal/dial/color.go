package dial

import (
	"fmt"
	"strings"
)

// Color is a hex RGB color such as "#7aa2f7". The empty value is Unset.
type Color string

const (
	// Unset marks a color the configuration did not provide.
	Unset Color = ""

	// Neutral is the disc color while the dial is Off.
	Neutral Color = "#888888"

	// MarkerBlack is the stock marker color.
	MarkerBlack Color = "#000000"
)

// IsSet reports whether c carries a value.
func (c Color) IsSet() bool {
	return c != Unset
}

// ParseColor validates a "#rgb" or "#rrggbb" string and normalises it to
// lower-case "#rrggbb". An empty string yields Unset without error.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unset, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Unset, fmt.Errorf("%w: %q must start with '#'", ErrInvalidColor, s)
	}
	hex := strings.ToLower(s[1:])
	for _, r := range hex {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return Unset, fmt.Errorf("%w: %q has non-hex digit %q", ErrInvalidColor, s, r)
		}
	}
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Unset, fmt.Errorf("%w: %q must have 3 or 6 hex digits", ErrInvalidColor, s)
	}
	return Color("#" + hex), nil
}

// ColorTable maps options to disc colors. Off always maps to the neutral
// color, whatever the configuration says.
type ColorTable struct {
	colors [NumOptions]Color
}

// NewColorTable builds a table from the neutral color and one color per
// non-Off option. Every non-Off option must have a color.
func NewColorTable(neutral Color, colors map[Option]Color) (ColorTable, error) {
	var t ColorTable
	if !neutral.IsSet() {
		neutral = Neutral
	}
	t.colors[Off] = neutral
	for _, o := range allOptions[1:] {
		c := colors[o]
		if !c.IsSet() {
			return ColorTable{}, fmt.Errorf("%w for option %q", ErrMissingColor, o)
		}
		t.colors[o] = c
	}
	return t, nil
}

// For returns the disc color of o.
func (t ColorTable) For(o Option) Color {
	o.mustBeValid()
	return t.colors[o]
}
