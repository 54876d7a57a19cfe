package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-cli/profile"
	"portfolio-cli/terminal"
)

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) Copy(text string) error {
	f.text = text
	return f.err
}

func newTestModel(t *testing.T) (replModel, *fakeOpener, *fakeClipboard) {
	t.Helper()
	op := &fakeOpener{}
	clip := &fakeClipboard{}
	m := newReplModel(newSession(profile.Default()), op, clip)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, op, clip
}

func update(t *testing.T, m replModel, msg tea.Msg) (replModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(replModel)
	require.True(t, ok)
	return rm, cmd
}

func typeText(t *testing.T, m replModel, s string) replModel {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(t *testing.T, m replModel, k tea.KeyType) (replModel, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

// drain 执行 cmd 并展开 BatchMsg，只用于不含计时器的命令。
func drain(cmd tea.Cmd) []tea.Msg {
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
		out = append(out, drain(c)...)
	}
	return out
}

func lastEntry(m replModel) terminal.Entry {
	entries := m.sess.entries()
	return entries[len(entries)-1]
}

func TestReplModel_MountFocusesInput(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.input.Blur()
	require.False(t, m.input.Focused())

	m, cmd := update(t, m, mountMsg{})
	assert.True(t, m.input.Focused())
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, m.sess.state.Transcript.Len())
}

func TestReplModel_SubmitHelp(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "help")
	assert.Equal(t, "help", m.sess.state.Pending)
	assert.False(t, m.showList, "exact command name should not open the completion list")

	m, _ = press(t, m, tea.KeyEnter)
	entries := m.sess.entries()
	require.Len(t, entries, 2+1+7)
	assert.Equal(t, terminal.User("> help"), entries[2])
	assert.Equal(t, "Available commands:", entries[3].Content)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "", m.sess.state.Pending)
	assert.Contains(t, m.viewport.View(), "Available commands:")
}

func TestReplModel_UnknownCommand(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "foo")
	m, _ = press(t, m, tea.KeyEnter)

	assert.Equal(t, terminal.Error(terminal.NotFoundMessage("foo")), lastEntry(m))
}

func TestReplModel_EmptySubmitChangesNothing(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "   ")
	m, cmd := press(t, m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.sess.state.Transcript.Len())
	assert.Empty(t, m.history)
}

func TestReplModel_ClearEmptiesViewport(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "clear")
	m, _ = press(t, m, tea.KeyEnter)

	assert.Equal(t, 0, m.sess.state.Transcript.Len())
	assert.NotContains(t, m.viewport.View(), "Welcome")
	assert.Empty(t, m.regions)
}

func TestReplModel_CompletionTabThenEnter(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "pro")
	require.True(t, m.showList)
	it, ok := m.list.SelectedItem().(suggestionItem)
	require.True(t, ok)
	assert.Equal(t, terminal.CmdProjects, it.info.Name)

	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyEnter)
	assert.False(t, m.showList)
	entries := m.sess.entries()
	assert.Equal(t, terminal.User("> projects"), entries[2])
	assert.Equal(t, "My Projects:", entries[3].Content)
}

func TestReplModel_EnterSubmitsPrefixAsTyped(t *testing.T) {
	for _, typed := range []string{"HE", "c", "ab"} {
		t.Run(typed, func(t *testing.T) {
			m, _, _ := newTestModel(t)
			m = typeText(t, m, typed)
			require.True(t, m.showList, "a command prefix opens the completion list")

			m, _ = press(t, m, tea.KeyEnter)
			assert.False(t, m.showList)
			entries := m.sess.entries()
			require.Len(t, entries, 2+2)
			assert.Equal(t, terminal.User("> "+typed), entries[2])
			assert.Equal(t, terminal.Error(terminal.NotFoundMessage(typed)), entries[3])
		})
	}
}

func TestReplModel_CompletionTabOnlyCompletes(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "co")
	require.True(t, m.showList)

	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, terminal.CmdContact, m.input.Value())
	assert.Equal(t, terminal.CmdContact, m.sess.state.Pending)
	assert.False(t, m.showList)
	assert.Equal(t, 2, m.sess.state.Transcript.Len())
}

func TestReplModel_History(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "about")
	m, _ = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "skills")
	m, _ = press(t, m, tea.KeyEnter)

	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "skills", m.input.Value())
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, "about", m.input.Value())
	assert.Equal(t, "about", m.sess.state.Pending)
	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "skills", m.input.Value())
	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, "", m.input.Value())
}

func TestReplModel_TabCyclesLinksAndOpens(t *testing.T) {
	m, op, _ := newTestModel(t)
	m = typeText(t, m, "contact")
	m, _ = press(t, m, tea.KeyEnter)

	links := m.sess.links()
	require.Len(t, links, len(profile.Default().Socials))

	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, links[len(links)-1], m.selected)
	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, links[0], m.selected)
	m, _ = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, links[len(links)-1], m.selected)

	want, _ := m.sess.entry(m.selected)
	m, cmd := press(t, m, tea.KeyCtrlO)
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{want.URL}, op.urls)

	m, _ = update(t, m, msgs[0])
	assert.Contains(t, m.status, want.URL)
	assert.Equal(t, 2+1+2+len(links), m.sess.state.Transcript.Len(), "navigation never touches the transcript")
}

func TestReplModel_OpenFailureGoesToStatus(t *testing.T) {
	m, op, _ := newTestModel(t)
	op.err = errors.New("no browser")
	m = typeText(t, m, "projects")
	m, _ = press(t, m, tea.KeyEnter)
	m, _ = press(t, m, tea.KeyTab)

	m, cmd := press(t, m, tea.KeyCtrlO)
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])
	assert.Contains(t, m.status, "no browser")
	assert.NotEqual(t, terminal.KindError, lastEntry(m).Kind)
}

func TestReplModel_ActivateWithoutSelection(t *testing.T) {
	m, op, _ := newTestModel(t)
	m, cmd := press(t, m, tea.KeyCtrlO)
	assert.Nil(t, cmd)
	assert.Empty(t, op.urls)
	assert.NotEmpty(t, m.status)

	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, -1, m.selected)
}

func TestReplModel_CopySelectedLink(t *testing.T) {
	m, _, clip := newTestModel(t)
	m = typeText(t, m, "projects")
	m, _ = press(t, m, tea.KeyEnter)
	m, _ = press(t, m, tea.KeyTab)
	want, ok := m.sess.entry(m.selected)
	require.True(t, ok)

	m, cmd := press(t, m, tea.KeyCtrlY)
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, want.URL, clip.text)

	m, _ = update(t, m, msgs[0])
	assert.Contains(t, m.status, want.URL)
}

func TestReplModel_MouseClickActivatesLink(t *testing.T) {
	m, op, _ := newTestModel(t)
	m = typeText(t, m, "contact")
	m, _ = press(t, m, tea.KeyEnter)
	require.NotEmpty(t, m.regions)

	region := m.regions[0]
	y := titleHeight + int(region.rect.Top) - m.viewport.YOffset
	m, cmd := update(t, m, tea.MouseMsg{
		X:      2,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, region.index, m.selected)
	drain(cmd)

	want, _ := m.sess.entry(region.index)
	assert.Equal(t, []string{want.URL}, op.urls)
}

func TestReplModel_MouseClickOutsideLink(t *testing.T) {
	m, op, _ := newTestModel(t)
	m, cmd := update(t, m, tea.MouseMsg{X: 1, Y: titleHeight, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, cmd)
	assert.Empty(t, op.urls)
	assert.Equal(t, -1, m.selected)
}

func TestReplModel_AnchorRunsSectionCommand(t *testing.T) {
	m, op, _ := newTestModel(t)

	cmd := m.navigate("#projects")
	msgs := drain(cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	assert.Empty(t, op.urls)
	entries := m.sess.entries()
	assert.Equal(t, terminal.User("> projects"), entries[2])

	assert.Nil(t, m.navigate("#nowhere"))
	assert.Contains(t, m.status, "#nowhere")
}

func TestReplModel_EscClearsThenQuits(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = typeText(t, m, "abc")

	m, cmd := press(t, m, tea.KeyEsc)
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "", m.sess.state.Pending)

	m, cmd = press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.exiting)
	assert.Equal(t, "", m.View())
}

func TestReplModel_View(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "portfolio")
	assert.Contains(t, view, "Welcome to "+profile.Default().Owner)
	assert.Contains(t, view, strings.TrimSpace(promptText))
	assert.Contains(t, view, "tab")
}

func TestReplModel_ResizeShrinksViewportForList(t *testing.T) {
	m, _, _ := newTestModel(t)
	full := m.viewport.Height
	assert.Equal(t, 30-titleHeight-footerHeight, full)

	m = typeText(t, m, "c")
	require.True(t, m.showList)
	assert.Less(t, m.viewport.Height, full)
}
