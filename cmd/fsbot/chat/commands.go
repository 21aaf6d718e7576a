package chat

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const commandHelp = "Commands: /pwd, /cd <dir>, /history, /help, /quit"

// commandCard is the /help notice. It is rendered as markdown when enabled.
const commandCard = `**Commands**

| Command | Action |
|---|---|
| ` + "`/pwd`" + ` | show the current directory |
| ` + "`/cd <dir>`" + ` | change the current directory |
| ` + "`/history`" + ` | count the messages in this session |
| ` + "`/help`" + ` | show this card |
| ` + "`/quit`" + ` | exit |

Anything else is sent to fsbot, for example *find notes* or *read todo.txt*.`

// handleCommand runs a slash command. Commands only produce notices; they
// never add to the conversation.
func (m Model) handleCommand(input string) (Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd, args := parts[0], parts[1:]
	fsys := m.engine.FileSystem()

	switch cmd {
	case "/quit", "/exit":
		m.quitting = true
		return m, tea.Quit

	case "/pwd":
		m.addEntry(roleNotice, "Current directory: "+fsys.CurrentDirectory())

	case "/cd":
		if len(args) == 0 {
			m.addEntry(roleNotice, "Usage: /cd <dir>")
			return m, nil
		}
		dir := strings.Join(args, " ")
		if err := fsys.SetCurrentDirectory(dir); err != nil {
			m.addEntry(roleNotice, fmt.Sprintf("Error changing directory: %v", err))
			return m, nil
		}
		m.addEntry(roleNotice, "Current directory: "+fsys.CurrentDirectory())

	case "/history":
		state := m.engine.State()
		m.addEntry(roleNotice, fmt.Sprintf("%d messages (%d turns) in session %s", state.Len(), state.Turns(), state.ID()))

	case "/help":
		m.appendEntry(Entry{Role: roleNotice, Content: commandCard, Markdown: true, Time: time.Now()})

	default:
		m.addEntry(roleNotice, fmt.Sprintf("Unknown command: %s. %s", cmd, commandHelp))
	}
	return m, nil
}
