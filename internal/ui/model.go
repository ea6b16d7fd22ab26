package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/asheshgoplani/fandial/internal/config"
	"github.com/asheshgoplani/fandial/internal/dial"
	"github.com/asheshgoplani/fandial/internal/labels"
	"github.com/asheshgoplani/fandial/internal/logging"
)

var uiLog = logging.ForComponent(logging.CompUI)

// ConfigReloadedMsg carries a config re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ThemeChangedMsg reports an OS dark mode change.
type ThemeChangedMsg struct {
	Dark bool
}

// DialModel hosts a dial.Widget in a bubbletea program: it turns window
// size and key/mouse events into widget calls and paints the widget's draw
// commands on a Canvas.
type DialModel struct {
	cfg     *config.Config
	catalog *labels.Catalog
	widget  *dial.Widget
	keys    keyMap
	help    help.Model

	width, height int

	// frame caches the painted canvas until the widget invalidates it or
	// the size changes.
	frame string
	dirty bool

	err error

	themes *ThemeWatcher
}

// NewDialModel builds the widget from cfg. Configuration errors (such as a
// missing color) are returned instead of starting with a broken dial.
func NewDialModel(cfg *config.Config, catalog *labels.Catalog) (*DialModel, error) {
	m := &DialModel{
		cfg:     cfg,
		catalog: catalog,
		keys:    defaultKeyMap(),
		help:    help.New(),
		dirty:   true,
	}
	w, err := m.buildWidget(cfg)
	if err != nil {
		return nil, err
	}
	m.widget = w
	return m, nil
}

func (m *DialModel) buildWidget(cfg *config.Config) (*dial.Widget, error) {
	dc, err := cfg.DialConfig()
	if err != nil {
		return nil, err
	}
	return dial.New(dc, m.catalog,
		dial.WithInvalidate(m.invalidate),
		dial.WithDecorator(keyHintDecorator{
			base: dial.ClickActionDecorator{Labels: m.catalog},
			key:  m.keys.Activate,
		}),
	)
}

func (m *DialModel) invalidate() {
	m.dirty = true
}

// Widget exposes the hosted widget.
func (m *DialModel) Widget() *dial.Widget {
	return m.widget
}

// WatchThemes makes the model follow OS dark mode changes from tw.
func (m *DialModel) WatchThemes(tw *ThemeWatcher) {
	m.themes = tw
}

func (m *DialModel) waitTheme() tea.Cmd {
	if m.themes == nil {
		return nil
	}
	return m.themes.Wait()
}

// Init implements tea.Model.
func (m *DialModel) Init() tea.Cmd {
	return m.waitTheme()
}

// statusHeight is the number of rows below the canvas.
func (m *DialModel) statusHeight() int {
	if m.help.ShowAll {
		return 1 + len(m.keys.FullHelp()[0])
	}
	return 2
}

func (m *DialModel) canvasRows() int {
	return max(m.height-m.statusHeight(), 0)
}

func (m *DialModel) resize() {
	c := NewCanvas(m.width, m.canvasRows(), m.cfg.GetUnitsPerPixel())
	w, h := c.Size()
	m.widget.SetSize(w, h)
	m.help.Width = m.width
	m.dirty = true
	logging.Aggregate(logging.CompUI, "resize",
		slog.Int("cols", m.width), slog.Int("rows", m.height))
}

// Update implements tea.Model.
func (m *DialModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Activate):
			m.widget.Activate()
		case key.Matches(msg, m.keys.Access):
			m.widget.PerformAccessibilityAction(dial.ActionClick)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y < m.canvasRows() {
			m.widget.Activate()
		}
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		return m, nil

	case ThemeChangedMsg:
		if m.cfg.GetTheme() == "system" {
			theme := "light"
			if msg.Dark {
				theme = "dark"
			}
			InitTheme(theme)
			m.dirty = true
		}
		return m, m.waitTheme()
	}
	return m, nil
}

// applyConfig rebuilds the widget from a reloaded config. The rebuilt
// widget starts at the first option again. A bad config keeps the current
// widget and shows the error.
func (m *DialModel) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.err = msg.Err
		uiLog.Warn("config_reload_failed", slog.String("error", msg.Err.Error()))
		return
	}
	w, err := m.buildWidget(msg.Config)
	if err != nil {
		m.err = err
		uiLog.Warn("config_rejected", slog.String("error", err.Error()))
		return
	}
	m.err = nil
	m.cfg = msg.Config
	m.widget = w
	InitTheme(m.cfg.ResolveTheme())
	if m.width > 0 {
		m.resize()
	}
	m.dirty = true
	uiLog.Info("config_reloaded")
}

func (m *DialModel) paint() string {
	if m.dirty {
		c := NewCanvas(m.width, m.canvasRows(), m.cfg.GetUnitsPerPixel())
		c.Execute(m.widget.Render())
		m.frame = c.Render()
		m.dirty = false
	}
	return m.frame
}

func (m *DialModel) statusLine() string {
	if m.err != nil {
		return ErrorStyle.Render("config: " + m.err.Error())
	}
	info := m.widget.AccessibilityInfo()
	parts := []string{DescriptionStyle.Render(info.Description)}
	for _, a := range info.Actions {
		parts = append(parts, ActionStyle.Render(a.Label))
	}
	return strings.Join(parts, "  ")
}

// View implements tea.Model.
func (m *DialModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	status := StatusBarStyle.Width(m.width).Render(m.statusLine())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.paint(),
		status,
		m.help.View(m.keys),
	)
}

// Snapshot paints one frame of w on a cols x rows canvas, followed by the
// accessibility description. It backs the non-interactive render command.
func Snapshot(w *dial.Widget, cols, rows int, unitsPerPixel float64) string {
	c := NewCanvas(cols, rows, unitsPerPixel)
	w.SetSize(c.Size())
	c.Execute(w.Render())
	info := w.AccessibilityInfo()
	var actions []string
	for _, a := range info.Actions {
		actions = append(actions, a.Label)
	}
	return c.Render() + "\n" + DescriptionStyle.Render(info.Description) + "  " + ActionStyle.Render(strings.Join(actions, ", "))
}
