package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/asheshgoplani/fandial/internal/config"
	"github.com/asheshgoplani/fandial/internal/dial"
	"github.com/asheshgoplani/fandial/internal/labels"
	"github.com/asheshgoplani/fandial/internal/logging"
	"github.com/asheshgoplani/fandial/internal/ui"
)

const Version = "0.1.0"

// DebugEnv enables file logging under the config directory.
const DebugEnv = "FANDIAL_DEBUG"

func init() {
	initColorProfile()
}

// initColorProfile configures the lipgloss color profile.
// FANDIAL_COLOR overrides detection: truecolor, 256, 16, none.
func initColorProfile() {
	switch strings.ToLower(os.Getenv("FANDIAL_COLOR")) {
	case "truecolor", "true", "24bit":
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	case "256", "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return
	case "16", "ansi", "basic":
		lipgloss.SetColorProfile(termenv.ANSI)
		return
	case "none", "off", "ascii":
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	colorTerm := os.Getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		lipgloss.SetColorProfile(termenv.TrueColor)
		return
	}
	// The dial colors are arbitrary hex values; ANSI256 approximates them
	// well enough where TrueColor is not advertised.
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			fmt.Printf("fandial v%s\n", Version)
			return
		case "help", "--help", "-h":
			printHelp()
			return
		case "render":
			if err := handleRender(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "config":
			if err := handleConfig(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
			printHelp()
			os.Exit(2)
		}
	}

	if err := runTUI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("fandial - a fan speed dial for the terminal")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fandial                 Open the interactive dial")
	fmt.Println("  fandial render [flags]  Print one frame and exit (--width, --height, --start, --presses, --locale)")
	fmt.Println("  fandial config init     Write the default config.toml")
	fmt.Println("  fandial config path     Print the config file path")
	fmt.Println("  fandial version         Print the version")
	fmt.Println()
	fmt.Println("Keys: enter/space or click to turn the dial, a for the accessibility action, q to quit.")
	fmt.Println()
	fmt.Printf("Environment: %s overrides the config directory, %s=1 writes debug logs there.\n",
		config.HomeEnv, DebugEnv)
}

// setupLogging routes slog to a rotated file when FANDIAL_DEBUG is set.
// The returned function flushes and closes the log.
func setupLogging(cfg *config.Config) func() {
	dir, err := config.Dir()
	if err != nil {
		dir = ""
	}
	debug := os.Getenv(DebugEnv) != ""
	logging.Init(cfg.LoggingConfig(dir, debug))

	if debug && dir != "" {
		// SIGUSR1 dumps recent log lines for post-mortem debugging
		usr1 := make(chan os.Signal, 1)
		signal.Notify(usr1, syscall.SIGUSR1)
		go func() {
			for range usr1 {
				path := filepath.Join(dir, fmt.Sprintf("crash-dump-%d.jsonl", time.Now().Unix()))
				if err := logging.DumpRecent(path); err != nil {
					logging.ForComponent(logging.CompUI).Error("crash_dump_failed", slog.String("error", err.Error()))
				}
			}
		}()
	}
	return logging.Shutdown
}

// loadSetup loads config and labels. A broken config file is reported but
// does not stop startup; the defaults are used instead.
func loadSetup() (*config.Config, *labels.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	catalog, err := labels.Load(cfg.Display.Locale)
	if err != nil {
		return nil, nil, err
	}
	return cfg, catalog, nil
}

func runTUI() error {
	cfg, catalog, err := loadSetup()
	if err != nil {
		return err
	}
	defer setupLogging(cfg)()

	ui.InitTheme(cfg.ResolveTheme())

	model, err := ui.NewDialModel(cfg, catalog)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.GetTheme() == "system" {
		if tw := ui.NewThemeWatcher(ctx); tw != nil {
			defer tw.Close()
			model.WatchThemes(tw)
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	g, gctx := errgroup.WithContext(ctx)
	if path, err := config.Path(); err == nil {
		if w, err := config.NewWatcher(path); err == nil {
			defer w.Close()
			g.Go(func() error {
				return forwardConfigChanges(gctx, w, p)
			})
		} else {
			logging.ForComponent(logging.CompConfig).Warn("config_watch_failed", slog.String("error", err.Error()))
		}
	}

	logging.ForComponent(logging.CompUI).Info("tui_started",
		slog.Int("pid", os.Getpid()),
		slog.String("locale", catalog.Tag().String()))

	_, runErr := p.Run()
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return runErr
}

// forwardConfigChanges reloads the config on each file change and hands it
// to the program's event loop.
func forwardConfigChanges(ctx context.Context, w *config.Watcher, p *tea.Program) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
			cfg, err := config.Reload()
			p.Send(ui.ConfigReloadedMsg{Config: cfg, Err: err})
		}
	}
}

func handleRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	width := fs.Int("width", 0, "columns (default: terminal width)")
	height := fs.Int("height", 0, "rows including the status line (default: terminal height)")
	start := fs.String("start", "off", "option to turn the dial to: off, low, medium, high")
	presses := fs.Int("presses", 0, "activations before drawing")
	locale := fs.String("locale", "", "label locale (default: config, then LANG)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, _, err := loadSetup()
	if err != nil {
		return err
	}
	defer setupLogging(cfg)()

	loc := cfg.Display.Locale
	if *locale != "" {
		loc = *locale
	}
	catalog, err := labels.Load(loc)
	if err != nil {
		return err
	}
	ui.InitTheme(cfg.ResolveTheme())

	cols, rows := *width, *height
	if cols <= 0 || rows <= 0 {
		tw, th, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			tw, th = 60, 24
		}
		if cols <= 0 {
			cols = tw
		}
		if rows <= 0 {
			rows = th - 1
		}
	}

	dc, err := cfg.DialConfig()
	if err != nil {
		return err
	}
	w, err := dial.New(dc, catalog)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	target, err := dial.ParseOption(*start)
	if err != nil {
		return err
	}
	w.TurnTo(target)
	for range max(*presses, 0) {
		w.Activate()
	}
	fmt.Println(ui.Snapshot(w, cols, max(rows-1, 1), cfg.GetUnitsPerPixel()))
	return nil
}

func handleConfig(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: fandial config init|path")
	}
	switch args[0] {
	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "init":
		created, err := config.CreateExample()
		if err != nil {
			return err
		}
		path, _ := config.Path()
		if created {
			fmt.Printf("Wrote %s\n", path)
		} else {
			fmt.Printf("%s already exists\n", path)
		}
		return nil
	}
	return fmt.Errorf("unknown config command %q", args[0])
}
