package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/alertguide/pkg/content"
	"github.com/vanderheijden86/alertguide/pkg/debug"
	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/ui"
	"github.com/vanderheijden86/alertguide/pkg/watcher"
)

func runTUI(s settings, noWatch bool) error {
	theme, err := ui.ThemeByName(s.cfg.UI.Theme, lipgloss.DefaultRenderer())
	if err != nil {
		return err
	}

	opts := ui.Options{
		Theme:           theme,
		Store:           s.store(),
		Direction:       s.direction,
		ScrollThreshold: s.cfg.UI.ScrollThreshold,
	}

	if s.cfg.LiveReloadEnabled() && !noWatch {
		path := s.cfg.Content.Path
		w, err := watcher.New(path,
			watcher.WithOnError(func(err error) {
				debug.Log("watcher: %v", err)
			}),
		)
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			defer w.Stop()
			debug.Log("watching %s (polling=%v)", w.Path(), w.IsPolling())
			opts.Changes = w.Changed()
			opts.Reload = func() (*guide.Guide, error) { return content.Load(path) }
		}
	}

	return runTUIProgram(ui.NewPageController(s.guide, opts))
}

func runTUIProgram(m tea.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated runs: set ALERTGUIDE_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("ALERTGUIDE_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	start := time.Now()
	_, err := p.Run()
	debug.LogTiming("tui session", time.Since(start))
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
