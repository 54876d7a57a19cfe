package terminal

// Kind 决定条目的展示样式，不携带其他行为。
type Kind string

const (
	KindInfo    Kind = "info"
	KindCommand Kind = "command"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindUser    Kind = "user"
	KindLink    Kind = "link"
)

// Entry 是 transcript 中的一行。URL 仅在 Kind 为 link 时存在。
type Entry struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

func Info(content string) Entry    { return Entry{Kind: KindInfo, Content: content} }
func Command(content string) Entry { return Entry{Kind: KindCommand, Content: content} }
func Success(content string) Entry { return Entry{Kind: KindSuccess, Content: content} }
func Error(content string) Entry   { return Entry{Kind: KindError, Content: content} }
func User(content string) Entry    { return Entry{Kind: KindUser, Content: content} }

func Link(content, url string) Entry {
	return Entry{Kind: KindLink, Content: content, URL: url}
}

// Navigable 报告激活该条目时是否应请求导航。
func (e Entry) Navigable() bool {
	return e.Kind == KindLink && e.URL != ""
}
