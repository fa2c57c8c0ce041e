// Package bubbletea provides the Bubble Tea TUI for the studiochat client.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ChatFunc runs one chat turn. The onDelta callback is called for each
// streaming text delta. The function blocks until the turn completes or the
// context is cancelled.
type ChatFunc func(ctx context.Context, userText, model string, onDelta func(string)) error

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. The context is used for graceful shutdown: when cancelled,
// the program quits, which also tears down any in-flight turn.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// DeltaMsg carries one streaming text delta to the Bubble Tea model.
type DeltaMsg struct {
	Delta string
}

// TurnDoneMsg signals that a chat turn has completed.
type TurnDoneMsg struct {
	Err error
}
