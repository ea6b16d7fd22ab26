package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/asheshgoplani/fandial/internal/dial"
)

type keyMap struct {
	Activate key.Binding
	Access   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "turn dial"),
		),
		Access: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accessibility action"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Activate, k.Access},
		{k.Help, k.Quit},
	}
}

// keyHintDecorator prefixes the click action with the key that performs it.
type keyHintDecorator struct {
	base dial.AccessibilityDecorator
	key  key.Binding
}

func (d keyHintDecorator) Decorate(info *dial.AccessibilityInfo, current dial.Option) {
	d.base.Decorate(info, current)
	a, ok := info.Action(dial.ActionClick)
	if !ok {
		return
	}
	a.Label = fmt.Sprintf("%s: %s", d.key.Help().Key, a.Label)
	info.AddAction(a)
}
