package chat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsbot/internal/engine"
	"fsbot/internal/files"
)

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	return newTestModelWith(t, Config{Theme: "light"})
}

// newTestModelWith builds a sized model over a scratch workspace. cfg.Engine
// is filled in.
func newTestModelWith(t *testing.T, cfg Config) (Model, string) {
	t.Helper()
	fsys, err := files.NewLocal(context.Background(), files.Options{Root: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(fsys.Close)

	cfg.Engine, err = engine.New(fsys, nil)
	require.NoError(t, err)

	m, err := InitChat(cfg)
	require.NoError(t, err)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), fsys.CurrentDirectory()
}

// collect runs cmd and flattens batches, skipping commands that block.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func submit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// turn submits text and feeds the response back into the model.
func turn(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, cmd := submit(t, m, text)
	require.True(t, m.isLoading)
	for _, msg := range collect(cmd) {
		if resp, ok := msg.(responseMsg); ok {
			next, _ := m.Update(resp)
			return next.(Model)
		}
	}
	t.Fatalf("no response for %q", text)
	return m
}

func TestInitChat_RequiresEngine(t *testing.T) {
	_, err := InitChat(Config{})
	assert.Error(t, err)
}

func TestWelcomeIsDisplayOnly(t *testing.T) {
	m, _ := newTestModel(t)
	entries := m.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, WelcomeMessage, entries[0].Content)
	assert.Equal(t, 0, m.engine.State().Len())
	assert.Contains(t, m.View(), "Welcome to fsbot!")
}

func TestSubmitRunsTurn(t *testing.T) {
	m, root := newTestModel(t)

	m = turn(t, m, "create file notes.txt")
	assert.False(t, m.isLoading)
	_, err := os.Stat(filepath.Join(root, "notes.txt"))
	assert.NoError(t, err)

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, roleUser, entries[1].Role)
	assert.Equal(t, "I've created the file: notes.txt", entries[2].Content)
	assert.Equal(t, 2, m.engine.State().Len())
	assert.Empty(t, m.textarea.Value())
}

func TestEmptySubmitIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := submit(t, m, "   ")
	assert.Nil(t, cmd)
	assert.False(t, m.isLoading)
	assert.Equal(t, 0, m.engine.State().Len())
}

func TestEnterIgnoredWhileBusy(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = submit(t, m, "help")
	require.True(t, m.isLoading)

	m, cmd := submit(t, m, "find a")
	assert.Nil(t, cmd)
	assert.Len(t, m.Entries(), 2, "second submit must not start a turn")
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"q on empty input", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			next, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.True(t, next.(Model).Quitting())
		})
	}
}

func TestQTypedIntoText(t *testing.T) {
	m, _ := newTestModel(t)
	m.textarea.SetValue("find ")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	nm := next.(Model)
	assert.False(t, nm.Quitting())
	assert.Equal(t, "find q", nm.textarea.Value())
}

func TestSlashCommands(t *testing.T) {
	m, root := newTestModel(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0755))

	m, _ = submit(t, m, "/pwd")
	assert.Equal(t, "Current directory: "+root, last(m).Content)

	m, _ = submit(t, m, "/cd docs")
	assert.Equal(t, "Current directory: "+filepath.Join(root, "docs"), last(m).Content)

	m, _ = submit(t, m, "/cd nowhere")
	assert.True(t, strings.HasPrefix(last(m).Content, "Error changing directory: "), last(m).Content)

	m, _ = submit(t, m, "/history")
	assert.True(t, strings.HasPrefix(last(m).Content, "0 messages (0 turns)"), last(m).Content)

	m, _ = submit(t, m, "/bogus")
	assert.Contains(t, last(m).Content, "Unknown command: /bogus")

	assert.Equal(t, 0, m.engine.State().Len(), "commands never reach the transcript")

	m, cmd := submit(t, m, "/quit")
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting())
}

func TestRepliesRenderVerbatimWithMarkdownOn(t *testing.T) {
	m, root := newTestModelWith(t, Config{Theme: "dark", RenderMarkdown: true})
	require.NotNil(t, m.renderer)
	require.NoError(t, os.WriteFile(filepath.Join(root, "my_old_notes.txt"), []byte("# TODO\n* buy *milk*\n1) x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a__init__.py"), nil, 0644))

	m = turn(t, m, "find _")
	m = turn(t, m, "read my_old_notes.txt")

	lines := renderedLines(m)
	for _, want := range []string{
		"Found these files:",
		filepath.Join(root, "my_old_notes.txt"),
		filepath.Join(root, "a__init__.py"),
		"File contents:",
		"# TODO",
		"* buy *milk*",
		"1) x",
	} {
		assert.Contains(t, lines, want)
	}
	assert.NotContains(t, strings.Join(lines, "\n"), "•")
}

func TestHelpCardUsesMarkdown(t *testing.T) {
	m, _ := newTestModelWith(t, Config{Theme: "dark", RenderMarkdown: true})
	m, _ = submit(t, m, "/help")

	e := last(m)
	require.True(t, e.Markdown)
	plain := ansi.Strip(m.renderHistory())
	assert.Contains(t, plain, "change the current directory")
	assert.NotContains(t, plain, "**Commands**")
	assert.Equal(t, 0, m.engine.State().Len())
}

// renderedLines strips styling from the history and trims each line down to
// its text.
func renderedLines(m Model) []string {
	var out []string
	for _, line := range strings.Split(ansi.Strip(m.renderHistory()), "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "┃"))
		out = append(out, line)
	}
	return out
}

func last(m Model) Entry {
	e := m.Entries()
	return e[len(e)-1]
}
