package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	studiochat "github.com/poly-workshop/studiochat"
	bt "github.com/poly-workshop/studiochat/bubbletea"
)

var testModels = []studiochat.Model{
	{ID: "gpt-4o-mini", Name: "GPT-4o mini"},
	{ID: "claude-sonnet", Name: "Claude Sonnet"},
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, send bt.ChatFunc) (bt.Model, *studiochat.Transcript) {
	t.Helper()
	return initModelWithSize(t, send, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, send bt.ChatFunc, width, height int) (bt.Model, *studiochat.Transcript) {
	t.Helper()
	transcript := studiochat.NewTranscript()
	m := bt.New(send, transcript, testModels, studiochat.DefaultTheme(), bt.Config{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, transcript
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopChat is a chat function that does nothing.
func nopChat(_ context.Context, _, _ string, _ func(string)) error {
	return nil
}
