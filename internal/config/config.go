// Package config loads the user's fandial configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	dark "github.com/thiagokokada/dark-mode-go"

	"github.com/asheshgoplani/fandial/internal/dial"
	"github.com/asheshgoplani/fandial/internal/logging"
)

// FileName is the TOML config file inside Dir().
const FileName = "config.toml"

// HomeEnv overrides the config directory.
const HomeEnv = "FANDIAL_HOME"

// Config represents user-facing configuration in TOML format
type Config struct {
	// Colors sets the disc color for each non-off speed
	Colors ColorSettings `toml:"colors"`

	// Layout overrides the dial geometry tuning
	Layout LayoutSettings `toml:"layout"`

	// Display defines theme, locale and terminal scaling
	Display DisplaySettings `toml:"display"`

	// Logs defines debug log settings
	Logs LogSettings `toml:"logs"`
}

// ColorSettings holds "#rrggbb" colors. All three are required.
type ColorSettings struct {
	Low    string `toml:"low"`
	Medium string `toml:"medium"`
	High   string `toml:"high"`

	// Neutral is the Off color (default: #888888)
	Neutral string `toml:"neutral,omitempty"`

	// Marker is the marker color (default: #000000)
	Marker string `toml:"marker,omitempty"`
}

// LayoutSettings uses pointers so an explicit zero differs from "unset".
type LayoutSettings struct {
	// StartAngleDeg is the angle of the first slot (default: 202.5)
	StartAngleDeg *float64 `toml:"start_angle_deg,omitempty"`

	// SlotWidthDeg is the angle between slots (default: 45)
	SlotWidthDeg *float64 `toml:"slot_width_deg,omitempty"`

	// LabelOffset pushes labels beyond the dial edge (default: 30)
	LabelOffset *float64 `toml:"label_offset,omitempty"`

	// MarkerOffset moves the marker relative to the edge (default: -35)
	MarkerOffset *float64 `toml:"marker_offset,omitempty"`

	// RadiusFraction scales the dial inside the drawable area (default: 0.8)
	RadiusFraction *float64 `toml:"radius_fraction,omitempty"`
}

// DisplaySettings controls how the terminal host draws the dial.
type DisplaySettings struct {
	// Theme: "dark" (default), "light", or "system"
	Theme string `toml:"theme"`

	// Locale for labels, e.g. "de" (default: from LANG)
	Locale string `toml:"locale"`

	// UnitsPerPixel is how many layout units one half-block pixel spans (default: 10)
	UnitsPerPixel float64 `toml:"units_per_pixel"`
}

// LogSettings defines debug log configuration.
type LogSettings struct {
	Level        string `toml:"level"`
	Format       string `toml:"format"`
	MaxSizeMB    int    `toml:"max_size_mb"`
	MaxBackups   int    `toml:"max_backups"`
	MaxAgeDays   int    `toml:"max_age_days"`
	Compress     bool   `toml:"compress"`
	RecentLines  int    `toml:"recent_lines"`
	AggregateSec int    `toml:"aggregate_interval_secs"`
}

var configLog = logging.ForComponent(logging.CompConfig)

// defaultConfig is used when no config file exists.
var defaultConfig = Config{
	Colors: ColorSettings{
		Low:    "#9ece6a",
		Medium: "#e0af68",
		High:   "#f7768e",
	},
	Display: DisplaySettings{
		Theme:         "dark",
		UnitsPerPixel: DefaultUnitsPerPixel,
	},
}

// DefaultUnitsPerPixel keeps the reference offsets (+30, -35) a few pixels
// wide on a terminal.
const DefaultUnitsPerPixel = 10.0

// Default returns a copy of the built-in configuration.
func Default() *Config {
	c := defaultConfig
	return &c
}

var (
	cache   *Config
	cacheMu sync.RWMutex
)

// Dir returns the fandial directory, honouring FANDIAL_HOME.
func Dir() (string, error) {
	if d := os.Getenv(HomeEnv); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".fandial"), nil
}

// Path returns the path of the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the config file once and caches it. A missing file yields the
// defaults; a broken file yields the defaults together with the parse error.
func Load() (*Config, error) {
	cacheMu.RLock()
	if cache != nil {
		defer cacheMu.RUnlock()
		return cache, nil
	}
	cacheMu.RUnlock()

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cache != nil {
		return cache, nil
	}

	path, err := Path()
	if err != nil {
		cache = Default()
		return cache, nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cache = Default()
		return cache, nil
	}
	if err != nil {
		cache = Default()
		return cache, err
	}
	cache = cfg
	return cache, nil
}

// LoadFile decodes one TOML file without touching the cache. Keys missing
// from the file stay unset: a file that forgets a color is an error later,
// not a silent default.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%s parse error: %w", FileName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		configLog.Warn("unknown_config_keys", "keys", fmt.Sprint(undecoded))
	}
	return &cfg, nil
}

// Reload drops the cache and loads again.
func Reload() (*Config, error) {
	ClearCache()
	return Load()
}

// ClearCache forgets the cached config; the next Load reads from disk.
func ClearCache() {
	cacheMu.Lock()
	cache = nil
	cacheMu.Unlock()
}

// Save writes cfg atomically (temp file, fsync, rename) and clears the cache.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# fandial configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if f, err := os.Open(tmp); err == nil {
		_ = f.Sync()
		f.Close()
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize config save: %w", err)
	}
	ClearCache()
	return nil
}

// CreateExample writes the default config if no file exists yet. It
// reports whether a file was written.
func CreateExample() (bool, error) {
	path, err := Path()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := Save(Default()); err != nil {
		return false, err
	}
	return true, nil
}

func degrees(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p * math.Pi / 180
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// DialConfig converts the user config into the widget's config. Color
// syntax errors are reported here; missing colors are left Unset so that
// dial.New rejects them.
func (c *Config) DialConfig() (dial.Config, error) {
	out := dial.DefaultConfig()

	fields := []struct {
		name     string
		raw      string
		dst      *dial.Color
		required bool
	}{
		{"colors.low", c.Colors.Low, &out.LowColor, true},
		{"colors.medium", c.Colors.Medium, &out.MediumColor, true},
		{"colors.high", c.Colors.High, &out.HighColor, true},
		{"colors.neutral", c.Colors.Neutral, &out.NeutralColor, false},
		{"colors.marker", c.Colors.Marker, &out.MarkerColor, false},
	}
	for _, f := range fields {
		col, err := dial.ParseColor(f.raw)
		if err != nil {
			return dial.Config{}, fmt.Errorf("%s: %w", f.name, err)
		}
		// optional colors keep their defaults when unset
		if col.IsSet() || f.required {
			*f.dst = col
		}
	}

	l := c.Layout
	out.Layout.StartAngle = degrees(l.StartAngleDeg, dial.ReferenceStartAngle)
	out.Layout.SlotWidth = degrees(l.SlotWidthDeg, dial.ReferenceSlotWidth)
	out.LabelOffset = orDefault(l.LabelOffset, dial.ReferenceLabelOffset)
	out.MarkerOffset = orDefault(l.MarkerOffset, dial.ReferenceMarkerOffset)
	out.RadiusFraction = orDefault(l.RadiusFraction, dial.ReferenceRadiusFraction)
	return out, nil
}

// GetUnitsPerPixel returns the display scale, defaulting when unset.
func (c *Config) GetUnitsPerPixel() float64 {
	if c.Display.UnitsPerPixel <= 0 {
		return DefaultUnitsPerPixel
	}
	return c.Display.UnitsPerPixel
}

// GetTheme returns "dark", "light" or "system", defaulting to "dark".
func (c *Config) GetTheme() string {
	switch c.Display.Theme {
	case "dark", "light", "system":
		return c.Display.Theme
	}
	return "dark"
}

// ResolveTheme resolves "system" to "dark" or "light" using the OS setting.
// Detection failures fall back to "dark".
func (c *Config) ResolveTheme() string {
	theme := c.GetTheme()
	if theme != "system" {
		return theme
	}
	isDark, err := dark.IsDarkMode()
	if err != nil {
		configLog.Debug("dark_mode_detect_failed", "error", err.Error())
		return "dark"
	}
	if isDark {
		return "dark"
	}
	return "light"
}

// LoggingConfig maps [logs] onto the logging package's config.
func (c *Config) LoggingConfig(dir string, debug bool) logging.Config {
	lc := logging.Config{
		LogDir:                dir,
		Debug:                 debug,
		Level:                 "debug",
		Format:                "json",
		MaxSizeMB:             c.Logs.MaxSizeMB,
		MaxBackups:            c.Logs.MaxBackups,
		MaxAgeDays:            c.Logs.MaxAgeDays,
		Compress:              c.Logs.Compress,
		RecentLines:           c.Logs.RecentLines,
		AggregateIntervalSecs: c.Logs.AggregateSec,
	}
	if c.Logs.Level != "" {
		lc.Level = c.Logs.Level
	}
	if c.Logs.Format != "" {
		lc.Format = c.Logs.Format
	}
	return lc
}
