// Package chat provides the interactive TUI chat interface for fsbot.
package chat

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"fsbot/cmd/fsbot/ui"
	"fsbot/internal/engine"
)

// WelcomeMessage is shown above the transcript. It is not part of the
// conversation.
const WelcomeMessage = "Welcome to fsbot! Type your message and press Enter."

const (
	headerHeight = 1
	footerHeight = 1
	inputHeight  = 3
	dividerRows  = 1
)

// Config holds configuration for initializing the chat interface.
type Config struct {
	Engine         *engine.Engine
	Theme          string
	RenderMarkdown bool
	WordWrap       int
}

// Entry is one line of the chat display. Notices are display-only and never
// reach the engine's transcript. Only Markdown entries go through glamour;
// everything else, replies included, is shown as written.
type Entry struct {
	Role     string
	Content  string
	Markdown bool
	Time     time.Time
}

const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleNotice    = "notice"
)

// responseMsg carries a completed turn back to Update.
type responseMsg engine.Turn

// Model is the main model for the interactive chat interface
type Model struct {
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	engine   *engine.Engine
	entries  []Entry
	wordWrap int

	isLoading bool
	ready     bool
	quitting  bool
	width     int
	height    int
}

// InitChat builds the chat model around an engine.
func InitChat(cfg Config) (Model, error) {
	if cfg.Engine == nil {
		return Model{}, fmt.Errorf("chat: engine is required")
	}
	if cfg.WordWrap <= 0 {
		cfg.WordWrap = 80
	}

	styles := ui.NewStyles(ui.ThemeFor(cfg.Theme))

	ti := textarea.New()
	ti.Placeholder = "Ask me to create, delete, find or read files... (Enter to send, Esc to exit)"
	ti.Focus()
	ti.Prompt = "| "
	ti.CharLimit = 4096
	ti.SetWidth(80)
	ti.SetHeight(inputHeight)
	ti.ShowLineNumbers = false
	ti.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	var renderer *glamour.TermRenderer
	if cfg.RenderMarkdown {
		style := "light"
		if styles.Theme.IsDark {
			style = "dark"
		}
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(cfg.WordWrap),
		)
	}

	m := Model{
		textarea: ti,
		viewport: vp,
		spinner:  sp,
		styles:   styles,
		renderer: renderer,
		engine:   cfg.Engine,
		wordWrap: cfg.WordWrap,
		entries: []Entry{{
			Role:    roleNotice,
			Content: WelcomeMessage,
			Time:    time.Now(),
		}},
	}
	m.viewport.SetContent(m.renderHistory())
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Entries returns the chat display, welcome line and notices included.
func (m Model) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) addEntry(role, content string) {
	m.appendEntry(Entry{Role: role, Content: content, Time: time.Now()})
}

func (m *Model) appendEntry(e Entry) {
	m.entries = append(m.entries, e)
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}
