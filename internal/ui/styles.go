package ui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents the current color scheme
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type palette struct {
	Bg, Surface, Border, Text, TextDim lipgloss.Color
	Accent, Red                        lipgloss.Color
}

// Dark Theme - Tokyo Night
var darkColors = palette{
	Bg:      lipgloss.Color("#1a1b26"),
	Surface: lipgloss.Color("#24283b"),
	Border:  lipgloss.Color("#414868"),
	Text:    lipgloss.Color("#c0caf5"),
	TextDim: lipgloss.Color("#787fa0"),
	Accent:  lipgloss.Color("#7aa2f7"),
	Red:     lipgloss.Color("#f7768e"),
}

// Light Theme - Tokyo Night Light variant
var lightColors = palette{
	Bg:      lipgloss.Color("#d5d6db"),
	Surface: lipgloss.Color("#e9e9ec"),
	Border:  lipgloss.Color("#9699a3"),
	Text:    lipgloss.Color("#343b58"),
	TextDim: lipgloss.Color("#6a6d7c"),
	Accent:  lipgloss.Color("#34548a"),
	Red:     lipgloss.Color("#8c4351"),
}

var (
	currentTheme = ThemeDark
	colors       palette

	// themeMu guards the palette and styles during live theme switches.
	themeMu sync.RWMutex
)

// Styles used by the dial view.
var (
	LabelStyle       lipgloss.Style
	StatusBarStyle   lipgloss.Style
	DescriptionStyle lipgloss.Style
	ActionStyle      lipgloss.Style
	ErrorStyle       lipgloss.Style
)

// InitTheme sets the active palette. Unknown names select the dark theme.
func InitTheme(theme string) {
	themeMu.Lock()
	defer themeMu.Unlock()
	if theme == string(ThemeLight) {
		currentTheme = ThemeLight
		colors = lightColors
	} else {
		currentTheme = ThemeDark
		colors = darkColors
	}
	initStyles()
}

// GetCurrentTheme returns the active theme
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

func init() {
	InitTheme(string(ThemeDark))
}

func initStyles() {
	LabelStyle = lipgloss.NewStyle().Foreground(colors.Text).Bold(true).Italic(true)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(colors.TextDim).
		Background(colors.Surface).
		Padding(0, 1)
	DescriptionStyle = lipgloss.NewStyle().Foreground(colors.Accent).Bold(true)
	ActionStyle = lipgloss.NewStyle().Foreground(colors.Text)
	ErrorStyle = lipgloss.NewStyle().Foreground(colors.Red).Bold(true)
}

// labelStyleOn returns the label style drawn over a pixel of the given
// background color. An empty color keeps the terminal background.
func labelStyleOn(bg lipgloss.Color) lipgloss.Style {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if bg == "" {
		return LabelStyle
	}
	return LabelStyle.Background(bg)
}
