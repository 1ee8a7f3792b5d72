package main

import (
	"context"
	"fmt"

	"github.com/akasheyy/navajuvala-frontend/internal/flows"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/akasheyy/navajuvala-frontend/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and managing the
// catalog.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/navajuvala-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// The TUI surfaces notices in its status line instead of stdout, so it
	// gets its own engine wired to the message loop.
	notices := ui.NewNotices()
	engine := flows.NewEngine(r.catalog, r.cache, notices, fileLogger)

	model := ui.NewModel(ctx, r.catalog, r.browser, engine, r.guard, r.favorites, notices)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
