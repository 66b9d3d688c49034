// Package tui provides the terminal browser for docmcp.
//
// The browser is built with Bubble Tea and Lipgloss. It shows the document IDs
// of a store in a filterable list and the selected document in a scrollable
// preview, rendered as markdown with glamour or as plain text.
//
// The browser never edits documents. It reads through document.Operations so
// the same logging and error paths as the MCP server apply.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts model in the alternate screen and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, model tea.Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, opts...)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
