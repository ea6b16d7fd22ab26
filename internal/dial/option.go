package dial

import (
	"fmt"
	"strings"
)

// Option is one position of the dial. The set is closed: Off, Low, Medium, High.
type Option int

const (
	Off Option = iota
	Low
	Medium
	High

	optionCount
)

// NumOptions is the number of dial positions.
const NumOptions = int(optionCount)

// LabelID is an opaque key resolved to display text by the host's label catalog.
type LabelID string

// Label identifiers for options and accessibility phrases.
const (
	LabelOff    LabelID = "off"
	LabelLow    LabelID = "low"
	LabelMedium LabelID = "medium"
	LabelHigh   LabelID = "high"
	LabelChange LabelID = "change"
	LabelReset  LabelID = "reset"
)

var optionLabels = [NumOptions]LabelID{LabelOff, LabelLow, LabelMedium, LabelHigh}

var allOptions = [NumOptions]Option{Off, Low, Medium, High}

// Options returns every option in ordinal order.
func Options() []Option {
	out := make([]Option, NumOptions)
	copy(out, allOptions[:])
	return out
}

// First returns the option the dial starts in.
func First() Option { return Off }

// Last returns the final option before the cycle wraps.
func Last() Option { return High }

// Valid reports whether o is a member of the option set.
func (o Option) Valid() bool {
	return o >= 0 && o < optionCount
}

// mustBeValid panics on an out-of-range option. Such a value can only come
// from a programming error, so it is never clamped.
func (o Option) mustBeValid() {
	if !o.Valid() {
		panic(fmt.Sprintf("dial: invalid option ordinal %d", int(o)))
	}
}

// Ordinal returns the zero-based position of o.
func (o Option) Ordinal() int {
	o.mustBeValid()
	return int(o)
}

// Label returns the label identifier for o.
func (o Option) Label() LabelID {
	o.mustBeValid()
	return optionLabels[o]
}

func (o Option) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Option(%d)", int(o))
	}
	return string(optionLabels[o])
}

// Next returns the cyclic successor of o. High wraps back to Off.
func Next(o Option) Option {
	o.mustBeValid()
	return Option((int(o) + 1) % NumOptions)
}

// ParseOption resolves an option by name ("off", "low", "medium", "high").
func ParseOption(name string) (Option, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, o := range allOptions {
		if string(optionLabels[o]) == n {
			return o, nil
		}
	}
	return Off, fmt.Errorf("unknown option %q", name)
}
