package ui

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	dark "github.com/thiagokokada/dark-mode-go"
)

// ThemeWatcher follows the OS dark mode setting for theme = "system".
type ThemeWatcher struct {
	changeCh  chan bool // true=dark, buffered, latest value wins
	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewThemeWatcher starts watching. It returns nil when the platform cannot
// report dark mode changes; callers then keep the theme resolved at start.
func NewThemeWatcher(parent context.Context) *ThemeWatcher {
	ctx, cancel := context.WithCancel(parent)

	events, errs, err := dark.WatchDarkMode(ctx)
	if err != nil {
		cancel()
		uiLog.Warn("theme_watcher_init_failed", slog.String("error", err.Error()))
		return nil
	}

	tw := &ThemeWatcher{
		changeCh: make(chan bool, 1),
		closeCh:  make(chan struct{}),
	}
	go tw.watchLoop(cancel, events, errs)
	return tw
}

func (tw *ThemeWatcher) watchLoop(cancel context.CancelFunc, events <-chan bool, errs <-chan error) {
	defer cancel()
	for {
		select {
		case <-tw.closeCh:
			return
		case isDark, ok := <-events:
			if !ok {
				return
			}
			// replace a value the model has not consumed yet
			select {
			case <-tw.changeCh:
			default:
			}
			tw.changeCh <- isDark
		case err, ok := <-errs:
			if ok && err != nil {
				uiLog.Warn("theme_watcher_error", slog.String("error", err.Error()))
			}
		}
	}
}

// Wait returns a command that delivers the next change as ThemeChangedMsg.
// The model re-issues it after each message to keep listening.
func (tw *ThemeWatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case isDark := <-tw.changeCh:
			return ThemeChangedMsg{Dark: isDark}
		case <-tw.closeCh:
			return nil
		}
	}
}

// Close stops the watcher goroutine. Safe to call multiple times.
func (tw *ThemeWatcher) Close() {
	tw.closeOnce.Do(func() {
		close(tw.closeCh)
	})
}
