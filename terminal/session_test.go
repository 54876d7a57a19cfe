package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-cli/profile"
)

func newTestDispatcher() (*Dispatcher, State) {
	p := profile.Default()
	return NewDispatcher(NewDefaultRegistry(p)), NewState(p.Owner)
}

func TestNewState_Seeds(t *testing.T) {
	_, s := newTestDispatcher()
	assert.Equal(t, []Entry{
		Info("Welcome to Arpit Rajput's interactive terminal"),
		Info(`Type "help" to see available commands`),
	}, s.Transcript.Entries())
	assert.Empty(t, s.Pending)
}

func TestReduce_EmptyInputIsIgnored(t *testing.T) {
	d, s := newTestDispatcher()
	for _, input := range []string{"", " ", "\t", "  \n  "} {
		s.Pending = input
		next, effects := d.Reduce(s, Submit{Text: input})
		assert.Equal(t, s.Transcript.Entries(), next.Transcript.Entries(), "input %q", input)
		assert.Empty(t, effects, "input %q", input)
		assert.Empty(t, next.Pending)
	}
}

func TestReduce_UnknownCommand(t *testing.T) {
	d, s := newTestDispatcher()
	for _, input := range []string{"xyz", "help me", "ls -la", "  Nope "} {
		t.Run(input, func(t *testing.T) {
			s.Pending = input
			next, effects := d.Reduce(s, Submit{Text: input})
			require.Equal(t, s.Transcript.Len()+2, next.Transcript.Len())
			added := next.Transcript.Entries()[s.Transcript.Len():]
			assert.Equal(t, User("> "+input), added[0])
			assert.Equal(t, KindError, added[1].Kind)
			assert.Empty(t, next.Pending)
			assert.Equal(t, []Effect{ScrollToEnd{}}, effects)
		})
	}
}

func TestReduce_UnknownCommandScenario(t *testing.T) {
	d, s := newTestDispatcher()
	next, _ := d.Reduce(s, Submit{Text: "xyz"})

	added := next.Transcript.Entries()[2:]
	assert.Equal(t, []Entry{
		User("> xyz"),
		Error(`Command not found: xyz. Type "help" for available commands.`),
	}, added)
}

func TestReduce_ErrorUsesTrimmedEchoUsesRaw(t *testing.T) {
	d, s := newTestDispatcher()
	next, _ := d.Reduce(s, Submit{Text: "  Foo "})

	added := next.Transcript.Entries()[2:]
	assert.Equal(t, User(">   Foo "), added[0])
	assert.Equal(t, Error(NotFoundMessage("Foo")), added[1])
}

func TestReduce_HelpIsCaseAndSpaceInsensitive(t *testing.T) {
	d, s := newTestDispatcher()
	h, _ := d.Registry().Lookup(CmdHelp)
	want := h().Entries

	for _, input := range []string{"help", "HELP", " Help ", "hElP\t"} {
		t.Run(input, func(t *testing.T) {
			next, effects := d.Reduce(s, Submit{Text: input})
			added := next.Transcript.Entries()[s.Transcript.Len():]
			require.Len(t, added, 1+7)
			assert.Equal(t, User("> "+input), added[0])
			assert.Equal(t, want, added[1:])
			assert.Equal(t, []Effect{ScrollToEnd{}}, effects)
		})
	}
}

func TestReduce_ProjectsScenario(t *testing.T) {
	d, s := newTestDispatcher()
	require.Equal(t, 2, s.Transcript.Len())

	next, _ := d.Reduce(s, Submit{Text: "projects"})
	// 每个项目一条仓库链接加一条 demo 链接
	n := 2 * len(profile.Default().Projects)
	require.Equal(t, 2+1+1+n, next.Transcript.Len())

	added := next.Transcript.Entries()[2:]
	assert.Equal(t, KindUser, added[0].Kind)
	assert.Equal(t, KindInfo, added[1].Kind)
	for _, e := range added[2:] {
		assert.Equal(t, KindLink, e.Kind)
		assert.NotEmpty(t, e.URL)
	}
}

func TestReduce_ClearEmptiesTranscript(t *testing.T) {
	d, s := newTestDispatcher()
	s, _ = d.Reduce(s, Submit{Text: "about"})
	s, _ = d.Reduce(s, Submit{Text: "bogus"})
	require.Greater(t, s.Transcript.Len(), 2)

	next, effects := d.Reduce(s, Submit{Text: " CLEAR "})
	assert.Equal(t, 0, next.Transcript.Len())
	assert.Empty(t, next.Pending)
	assert.Equal(t, []Effect{ScrollToEnd{}}, effects)

	// clear 之后继续正常追加
	next, _ = d.Reduce(next, Submit{Text: "xyz"})
	assert.Equal(t, 2, next.Transcript.Len())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	d, s := newTestDispatcher()
	before := s.Transcript.Entries()

	_, _ = d.Reduce(s, Submit{Text: "skills"})
	_, _ = d.Reduce(s, Submit{Text: "clear"})
	assert.Equal(t, before, s.Transcript.Entries())
}

func TestReduce_EditAndMount(t *testing.T) {
	d, s := newTestDispatcher()

	next, effects := d.Reduce(s, Mount{})
	assert.Equal(t, []Effect{FocusInput{}}, effects)
	assert.Equal(t, s, next)

	next, effects = d.Reduce(s, Edit{Text: "pro"})
	assert.Equal(t, "pro", next.Pending)
	assert.Empty(t, effects)
	assert.Equal(t, s.Transcript.Entries(), next.Transcript.Entries())
}

func TestReduce_Activate(t *testing.T) {
	d, s := newTestDispatcher()
	s, _ = d.Reduce(s, Submit{Text: "contact"})
	links := s.Transcript.Links()
	require.NotEmpty(t, links)

	_, effects := d.Reduce(s, Activate{Index: links[0]})
	assert.Equal(t, []Effect{Navigate{URL: "https://github.com/ARPIT871"}}, effects)

	// 非链接条目与越界下标不产生导航
	_, effects = d.Reduce(s, Activate{Index: 0})
	assert.Empty(t, effects)
	_, effects = d.Reduce(s, Activate{Index: 999})
	assert.Empty(t, effects)
	_, effects = d.Reduce(s, Activate{Index: -1})
	assert.Empty(t, effects)
}
