package terminal

import "strings"

// State 是一个终端会话的全部状态。
type State struct {
	Transcript Transcript
	// Pending 是尚未提交的输入行。
	Pending string
}

// NewState 返回带两条欢迎信息的初始状态。
func NewState(owner string) State {
	return State{Transcript: NewTranscript(SeedEntries(owner)...)}
}

// Event 是宿主送入 Reduce 的输入事件。
type Event interface{ isEvent() }

type (
	// Mount 在组件挂载时发送一次。
	Mount struct{}
	// Edit 表示输入框内容变化。
	Edit struct{ Text string }
	// Submit 提交一行原始输入。
	Submit struct{ Text string }
	// Activate 表示用户激活了第 Index 条记录（点击或快捷键）。
	Activate struct{ Index int }
)

func (Mount) isEvent()    {}
func (Edit) isEvent()     {}
func (Submit) isEvent()   {}
func (Activate) isEvent() {}

// Effect 是 Reduce 请求宿主执行的副作用，顺序即执行顺序。
type Effect interface{ isEffect() }

type (
	FocusInput  struct{}
	ScrollToEnd struct{}
	Navigate    struct{ URL string }
)

func (FocusInput) isEffect()  {}
func (ScrollToEnd) isEffect() {}
func (Navigate) isEffect()    {}

// Dispatcher 把事件解析到命令注册表上。
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

// Reduce 计算事件后的新状态与副作用，不修改传入的 s。
func (d *Dispatcher) Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Mount:
		return s, []Effect{FocusInput{}}
	case Edit:
		s.Pending = ev.Text
		return s, nil
	case Submit:
		return d.submit(s, ev.Text)
	case Activate:
		e, ok := s.Transcript.At(ev.Index)
		if !ok || !e.Navigable() {
			return s, nil
		}
		return s, []Effect{Navigate{URL: e.URL}}
	}
	return s, nil
}

func (d *Dispatcher) submit(s State, raw string) (State, []Effect) {
	s.Pending = ""
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return s, nil
	}

	t := s.Transcript.Append(User("> " + raw))
	if h, ok := d.registry.Lookup(Normalize(raw)); ok {
		out := h()
		if out.Replace {
			t = t.Replace(out.Entries)
		} else {
			t = t.Append(out.Entries...)
		}
	} else {
		t = t.Append(Error(NotFoundMessage(trimmed)))
	}
	s.Transcript = t
	return s, []Effect{ScrollToEnd{}}
}

// NotFoundMessage 返回未知命令的提示文本。
func NotFoundMessage(input string) string {
	return "Command not found: " + input + `. Type "help" for available commands.`
}
