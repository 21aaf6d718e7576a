package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHistory() string {
	var sb strings.Builder

	for _, e := range m.entries {
		switch e.Role {
		case roleUser:
			sb.WriteString(m.styles.UserLabel.Render("You") + "\n")
			sb.WriteString(m.styles.UserInput.Render(e.Content))
			sb.WriteString("\n\n")

		case roleNotice:
			if e.Markdown {
				sb.WriteString(m.safeRenderMarkdown(e.Content))
			} else {
				sb.WriteString(m.styles.Muted.Render(e.Content))
			}
			sb.WriteString("\n\n")

		default:
			// Replies carry paths and file contents verbatim.
			sb.WriteString(m.styles.AssistantLabel.Render("fsbot") + "\n")
			sb.WriteString(m.styles.AgentResponse.Render(e.Content))
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return strings.Trim(rendered, "\n")
		}
	}
	return content
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	input := m.textarea.View()
	if m.isLoading {
		input = m.spinner.View() + m.styles.Muted.Render(" working...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.styles.RenderDivider(m.width),
		input,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("fsbot")
	cwd := m.styles.Muted.Render(" " + m.engine.FileSystem().CurrentDirectory())
	return title + cwd
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render("Enter send • q/Esc/Ctrl+C quit • /pwd /cd /history")
}
