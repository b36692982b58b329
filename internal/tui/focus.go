package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/babsant/clean-sanctuary/internal/engine"
)

// RunFocus runs the interactive quest session: pick a recommendation, walk
// its steps, pause or finish.
func RunFocus(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newFocusModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
