package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"fsbot/internal/logging"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKeyMsg(msg); handled {
			return next, cmd
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textarea.SetWidth(msg.Width)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight-inputHeight-dividerRows, 1)

		if m.renderer != nil {
			wrap := min(m.wordWrap, max(msg.Width-4, 20))
			style := "light"
			if m.styles.Theme.IsDark {
				style = "dark"
			}
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithStylePath(style),
				glamour.WithWordWrap(wrap),
			)
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		m.ready = true

	case responseMsg:
		m.isLoading = false
		m.addEntry(roleAssistant, msg.Reply)
		m.textarea.Focus()
		return m, nil

	case spinner.TickMsg:
		if m.isLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	if !m.isLoading {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyMsg handles the keys the chat owns. The bool reports whether the
// key was consumed.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit, true

	case tea.KeyEnter:
		if m.isLoading {
			return m, nil, true
		}
		return m.handleSubmit()

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true

	case tea.KeyRunes:
		// q quits only when nothing has been typed.
		if string(msg.Runes) == "q" && m.textarea.Value() == "" && !m.isLoading {
			m.quitting = true
			return m, tea.Quit, true
		}
	}

	if m.isLoading {
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) handleSubmit() (Model, tea.Cmd, bool) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil, true
	}
	m.textarea.Reset()

	if strings.HasPrefix(input, "/") {
		next, cmd := m.handleCommand(input)
		return next, cmd, true
	}

	m.addEntry(roleUser, input)
	m.isLoading = true
	m.textarea.Blur()
	return m, tea.Batch(m.spinner.Tick, m.processInput(input)), true
}

// processInput runs one turn off the UI goroutine. The turn is applied as a
// whole before responseMsg is delivered.
func (m Model) processInput(input string) tea.Cmd {
	eng := m.engine
	return func() tea.Msg {
		turn := eng.Handle(context.Background(), input)
		logging.SessionDebug("chat turn: intent=%s", turn.Intent)
		return responseMsg(turn)
	}
}
