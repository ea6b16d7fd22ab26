package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheshgoplani/fandial/internal/config"
	"github.com/asheshgoplani/fandial/internal/dial"
	"github.com/asheshgoplani/fandial/internal/labels"
)

func newTestModel(t *testing.T) *DialModel {
	t.Helper()
	catalog, err := labels.Load("en")
	require.NoError(t, err)
	m, err := NewDialModel(config.Default(), catalog)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewDialModelRejectsMissingColor(t *testing.T) {
	catalog, err := labels.Load("en")
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Colors.Medium = ""

	_, err = NewDialModel(cfg, catalog)
	assert.ErrorIs(t, err, dial.ErrMissingColor)
}

func TestWindowSizeSetsGeometry(t *testing.T) {
	m := newTestModel(t)
	g := m.Widget().Geometry()

	// 80 cols x 22 canvas rows, two pixels per row, 10 units per pixel
	assert.InDelta(t, 800, g.Width, 1e-9)
	assert.InDelta(t, 440, g.Height, 1e-9)
	assert.InDelta(t, 176, g.Radius, 1e-9)
}

func TestActivationKeysAdvanceDial(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, dial.Low, m.Widget().Current())

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, dial.Medium, m.Widget().Current())

	m.Update(runeKey('a'))
	assert.Equal(t, dial.High, m.Widget().Current())

	m.Update(runeKey('x'))
	assert.Equal(t, dial.High, m.Widget().Current())
}

func TestMouseClickOnCanvasActivates(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, dial.Low, m.Widget().Current())

	m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 3, Y: 23, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, dial.Low, m.Widget().Current())
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsDialAndAccessibility(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Medium")
	assert.Contains(t, view, "enter/space: change")
	assert.Equal(t, 24, len(strings.Split(view, "\n")))

	for range 3 {
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	view = m.View()
	assert.Contains(t, view, "High")
	assert.Contains(t, view, "enter/space: reset")
}

func TestViewIsCachedUntilInvalidated(t *testing.T) {
	m := newTestModel(t)
	_ = m.View()
	assert.False(t, m.dirty)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.dirty)
	_ = m.View()
	assert.False(t, m.dirty)
}

func TestHelpToggleShrinksCanvas(t *testing.T) {
	m := newTestModel(t)
	before := m.canvasRows()
	m.Update(runeKey('?'))
	assert.Less(t, m.canvasRows(), before)
	assert.Contains(t, m.View(), "accessibility action")
}

func TestEmptyViewBeforeSize(t *testing.T) {
	catalog, err := labels.Load("en")
	require.NoError(t, err)
	m, err := NewDialModel(config.Default(), catalog)
	require.NoError(t, err)
	assert.Empty(t, m.View())
}

func TestConfigReloadRejectsIncompleteColors(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	before := m.Widget()

	bad := config.Default()
	bad.Colors.High = ""
	m.Update(ConfigReloadedMsg{Config: bad})

	assert.Same(t, before, m.Widget())
	assert.Equal(t, dial.Low, m.Widget().Current())
	assert.Contains(t, m.View(), "config:")
}

func TestConfigReloadParseErrorIsShown(t *testing.T) {
	m := newTestModel(t)
	m.Update(ConfigReloadedMsg{Err: errors.New("config.toml parse error: boom")})
	assert.Contains(t, m.View(), "boom")
}

func TestConfigReloadRebuildsWidget(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	cfg := config.Default()
	cfg.Colors.Low = "#123456"
	m.Update(ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, dial.Off, m.Widget().Current())
	assert.InDelta(t, 176, m.Widget().Geometry().Radius, 1e-9)
	assert.NotContains(t, m.View(), "config:")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	disc := m.Widget().Render()[0].(dial.Circle)
	assert.Equal(t, dial.Color("#123456"), disc.Color)
}

func TestThemeChangeOnlyForSystemTheme(t *testing.T) {
	defer InitTheme("dark")
	m := newTestModel(t)

	m.Update(ThemeChangedMsg{Dark: false})
	assert.Equal(t, ThemeDark, GetCurrentTheme())

	m.cfg.Display.Theme = "system"
	m.Update(ThemeChangedMsg{Dark: false})
	assert.Equal(t, ThemeLight, GetCurrentTheme())
}

func TestKeyHintDecorator(t *testing.T) {
	catalog, err := labels.Load("de")
	require.NoError(t, err)
	dec := keyHintDecorator{base: dial.ClickActionDecorator{Labels: catalog}, key: defaultKeyMap().Activate}

	var info dial.AccessibilityInfo
	dec.Decorate(&info, dial.High)
	a, ok := info.Action(dial.ActionClick)
	require.True(t, ok)
	assert.Equal(t, "enter/space: zurücksetzen", a.Label)
}

func TestSnapshot(t *testing.T) {
	catalog, err := labels.Load("en")
	require.NoError(t, err)
	dc, err := config.Default().DialConfig()
	require.NoError(t, err)
	w, err := dial.New(dc, catalog)
	require.NoError(t, err)
	w.Activate()

	out := Snapshot(w, 60, 20, config.DefaultUnitsPerPixel)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 21)
	assert.Contains(t, out, "Off")
	assert.Contains(t, lines[20], "Low")
	assert.Contains(t, lines[20], "change")
}
