package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/markdown"
)

var _ tea.Model = Model{}

// Config carries static display context for the session view.
type Config struct {
	Nickname string // current user, shown in the status line
}

// Model is the Bubble Tea model for the chat view. It renders the transcript
// and drives turns through a ChatFunc; all conversation state lives in the
// Transcript, so the view can be torn down and rebuilt at any time.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	send       ChatFunc
	transcript *studiochat.Transcript
	models     []studiochat.Model
	modelIdx   int
	theme      studiochat.Theme
	styles     Styles
	config     Config

	sending bool
	cancel  context.CancelFunc
	deltaCh chan string
	doneCh  chan error
	err     error
	ready   bool
}

// New creates a chat Model. models is the catalog fetched at startup; the
// first entry is preselected.
func New(send ChatFunc, transcript *studiochat.Transcript, models []studiochat.Model, theme studiochat.Theme, config Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:      ti,
		send:       send,
		transcript: transcript,
		models:     models,
		theme:      theme,
		styles:     NewStyles(theme),
		config:     config,
	}
}

// Sending returns whether a turn is currently in flight.
func (m Model) Sending() bool { return m.sending }

// Err returns the last turn error, if any.
func (m Model) Err() error { return m.err }

// SelectedModel returns the model ID the next turn will target.
func (m Model) SelectedModel() string {
	if len(m.models) == 0 {
		return ""
	}
	return m.models[m.modelIdx].ID
}

// SetSending is a test helper that puts the model in a sending state.
func SetSending(m Model) (Model, tea.Cmd) {
	m.sending = true
	return m, nil
}

// SetSendingWithCancel is a test helper that puts the model in a sending
// state with a cancel function.
func SetSendingWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.sending = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DeltaMsg:
		// The delta is already in the transcript; just redraw.
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.deltaCh != nil {
			return m, listenForDelta(m.deltaCh, m.doneCh)
		}
		return m, nil

	case TurnDoneMsg:
		m.sending = false
		m.cancel = nil
		m.deltaCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Viewport always receives messages for scrolling.
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.sending {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusH := 1
	gapH := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusH - gapH
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.sending {
			// Abandon the in-flight stream; partial content stays in the
			// transcript until the turn reports done.
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.sending {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyTab:
		if !m.sending && len(m.models) > 0 {
			m.modelIdx = (m.modelIdx + 1) % len(m.models)
		}
		return m, nil

	case tea.KeyCtrlL:
		if !m.sending {
			m.transcript.Reset()
			m.err = nil
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to both input (for typing) and viewport (for
	// scrolling). Only forward non-character keys to the viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	if !m.sending {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.deltaCh = make(chan string, 256)
	m.doneCh = make(chan error, 1)
	m.sending = true

	m.Input.Blur()

	return m, tea.Batch(
		startTurn(m.send, ctx, text, m.SelectedModel(), m.deltaCh, m.doneCh),
		listenForDelta(m.deltaCh, m.doneCh),
	)
}

// renderContent renders the transcript snapshot: user messages as prompt
// lines, assistant messages as markdown.
func (m Model) renderContent() string {
	messages := m.transcript.Snapshot()
	if len(messages) == 0 {
		return m.styles.Muted.Render("Send a message to start.")
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case studiochat.RoleUser:
			b.WriteString(m.styles.UserMsg.Render("> ") + msg.Content)
		case studiochat.RoleAssistant:
			if msg.Content == "" {
				b.WriteString(m.styles.Muted.Render("..."))
			} else {
				b.WriteString(markdown.Render(msg.Content, m.Viewport.Width, m.theme))
			}
		default:
			b.WriteString(m.styles.Muted.Render(msg.Content))
		}
	}
	return b.String()
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.sending {
		return m.styles.Muted.Render("Generating...")
	}
	parts := []string{}
	if model := m.SelectedModel(); model != "" {
		parts = append(parts, "model: "+model)
	} else {
		parts = append(parts, "no models available")
	}
	if m.config.Nickname != "" {
		parts = append(parts, m.config.Nickname)
	}
	parts = append(parts, "Enter to send, Tab to switch model, Ctrl+C to quit")
	return m.styles.Muted.Render(strings.Join(parts, " · "))
}

// startTurn runs the chat turn in a goroutine and signals completion.
func startTurn(send ChatFunc, ctx context.Context, text, model string, deltaCh chan<- string, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := send(ctx, text, model, func(d string) {
			select {
			case deltaCh <- d:
			case <-ctx.Done():
			}
		})
		close(deltaCh)
		doneCh <- err
		return nil
	}
}

// listenForDelta waits for the next delta from the channel. When the channel
// closes, it reads the error from doneCh and returns TurnDoneMsg.
func listenForDelta(ch <-chan string, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return TurnDoneMsg{Err: <-doneCh}
		}
		return DeltaMsg{Delta: d}
	}
}
