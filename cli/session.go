package cli

import (
	"github.com/google/uuid"

	"portfolio-cli/logging"
	"portfolio-cli/profile"
	"portfolio-cli/terminal"
)

// session 持有一次终端会话的状态，TUI 与批处理模式共用。
type session struct {
	id         string
	profile    profile.Profile
	dispatcher *terminal.Dispatcher
	state      terminal.State
	log        *logging.Logger
}

func newSession(p profile.Profile) *session {
	id := uuid.NewString()
	return &session{
		id:         id,
		profile:    p,
		dispatcher: terminal.NewDispatcher(terminal.NewDefaultRegistry(p)),
		state:      terminal.NewState(p.Owner),
		log:        logging.L().With("session", id),
	}
}

// apply 把事件交给 Reduce 并记录提交与激活。
func (s *session) apply(ev terminal.Event) []terminal.Effect {
	before := s.state.Transcript.Len()
	next, effects := s.dispatcher.Reduce(s.state, ev)
	s.state = next

	switch ev := ev.(type) {
	case terminal.Submit:
		name := terminal.Normalize(ev.Text)
		if name == "" {
			return effects
		}
		_, known := s.dispatcher.Registry().Lookup(name)
		s.log.Infow("command submitted",
			"input", name,
			"known", known,
			"entries_before", before,
			"entries_after", next.Transcript.Len(),
		)
		switch {
		case !known:
			s.log.Warnw("unknown command", "input", name)
		case next.Transcript.Len() == 0:
			s.log.Infow("transcript cleared", "removed", before+1)
		}
	case terminal.Activate:
		for _, eff := range effects {
			if nav, ok := eff.(terminal.Navigate); ok {
				s.log.Infow("link activated", "index", ev.Index, "url", nav.URL)
			}
		}
	}
	return effects
}

func (s *session) entries() []terminal.Entry {
	return s.state.Transcript.Entries()
}

func (s *session) entry(i int) (terminal.Entry, bool) {
	return s.state.Transcript.At(i)
}

func (s *session) links() []int {
	return s.state.Transcript.Links()
}

func (s *session) registry() *terminal.Registry {
	return s.dispatcher.Registry()
}
