package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfolio-cli/terminal"
)

const (
	promptText     = "$ "
	titleHeight    = 1
	footerHeight   = 2 // 输入行 + 状态行
	maxListHeight  = 6
	defaultWidth   = 80
	defaultHeight  = 24
	idleStatusHint = "tab 选择链接 · ctrl+o 打开 · ctrl+y 复制 · esc 退出"
)

// replModel 负责管理 TUI 的状态与渲染。
type replModel struct {
	sess      *session
	input     textinput.Model
	viewport  viewport.Model
	list      list.Model
	opener    Opener
	clipboard Clipboard
	title     string

	width  int
	height int

	// 补全列表
	showList bool

	// 输入历史
	history []string
	histPos int

	// 当前选中的链接在 transcript 中的下标，-1 表示无
	selected int
	regions  []linkRegion
	mouseX   int

	status  string
	exiting bool
}

// suggestionItem 实现 list.DefaultItem 接口，用于补全列表。
type suggestionItem struct {
	info terminal.CommandInfo
}

func (i suggestionItem) Title() string       { return i.info.Name }
func (i suggestionItem) Description() string { return i.info.Description }
func (i suggestionItem) FilterValue() string { return i.info.Name }

type mountMsg struct{}

// anchorMsg 请求在当前会话中执行页内锚点对应的命令。
type anchorMsg struct {
	command string
}

type openResultMsg struct {
	url string
	err error
}

type copyResultMsg struct {
	url string
	err error
}

// newReplModel 构造 TUI 模型。
func newReplModel(sess *session, opener Opener, clip Clipboard) replModel {
	input := textinput.New()
	input.Prompt = stylePrompt.Render(promptText)
	input.Placeholder = "Type a command..."
	input.TextStyle = styleInput
	input.Cursor.Style = styleInput
	input.Focus()

	// 补全面板
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = styleSelected.Padding(0, 1)
	delegate.Styles.SelectedDesc = styleSelected.Padding(0, 1)
	delegate.Styles.NormalTitle = styleDim.Padding(0, 1)
	delegate.Styles.NormalDesc = styleDim.Padding(0, 1)

	l := list.New(nil, delegate, defaultWidth, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)

	m := replModel{
		sess:      sess,
		input:     input,
		viewport:  viewport.New(defaultWidth, defaultHeight-titleHeight-footerHeight),
		list:      l,
		opener:    opener,
		clipboard: clip,
		title:     fmt.Sprintf("%s@portfolio: ~", sess.profile.Handle),
		width:     defaultWidth,
		height:    defaultHeight,
		histPos:   0,
		selected:  -1,
		mouseX:    -1,
	}
	m.refresh()
	return m
}

// Init 启动光标闪烁，并发送挂载事件。
func (m replModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return mountMsg{} },
	)
}

// Update 处理输入、鼠标与窗口尺寸变化。
func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		return m, m.apply(terminal.Mount{})

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case anchorMsg:
		return m.submit(msg.command)

	case openResultMsg:
		if msg.err != nil {
			m.sess.log.Warnw("open link failed", "url", msg.url, "error", msg.err)
			m.status = styleError.Render(fmt.Sprintf("无法打开 %s: %v", msg.url, msg.err))
		} else {
			m.status = fmt.Sprintf("已打开 %s", msg.url)
		}
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.sess.log.Warnw("copy link failed", "url", msg.url, "error", msg.err)
			m.status = styleError.Render(fmt.Sprintf("复制失败: %v", msg.err))
		} else {
			m.status = fmt.Sprintf("已复制 %s", msg.url)
		}
		return m, nil

	case tea.KeyMsg:
		// 补全列表可见时，优先处理 list 导航/选择
		if m.showList {
			switch msg.Type {
			case tea.KeyUp, tea.KeyDown:
				var cmd tea.Cmd
				m.list, cmd = m.list.Update(msg)
				return m, cmd
			case tea.KeyTab:
				m.acceptSuggestion()
				return m.edited(nil)
			case tea.KeyEnter:
				// Enter 总是提交原样输入，补全只由 Tab 触发
				m.setShowList(false)
				return m.handleEnter()
			case tea.KeyEsc:
				m.setShowList(false)
				return m, nil
			default:
			}
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			m.exiting = true
			return m, tea.Quit
		case tea.KeyEsc:
			if m.input.Value() != "" {
				m.input.Reset()
				return m.edited(nil)
			}
			m.exiting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		case tea.KeyUp:
			m.historyPrev()
			return m.edited(nil)
		case tea.KeyDown:
			m.historyNext()
			return m.edited(nil)
		case tea.KeyTab:
			m.cycleLink(1)
			return m, nil
		case tea.KeyShiftTab:
			m.cycleLink(-1)
			return m, nil
		case tea.KeyCtrlO:
			return m.activateSelected()
		case tea.KeyCtrlY:
			return m.copySelected()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m.edited(cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// edited 在输入框内容变化后同步 Pending 与补全列表。
func (m replModel) edited(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.input.Value() != m.sess.state.Pending {
		m.apply(terminal.Edit{Text: m.input.Value()})
	}
	m.updateSuggestions()
	return m, cmd
}

func (m replModel) handleEnter() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	m.input.Reset()
	m.setShowList(false)
	if strings.TrimSpace(value) != "" {
		m.history = append(m.history, value)
	}
	m.histPos = len(m.history)
	return m.submit(value)
}

func (m replModel) submit(value string) (tea.Model, tea.Cmd) {
	cmd := m.apply(terminal.Submit{Text: value})
	if strings.TrimSpace(value) != "" {
		m.status = ""
	}
	return m, cmd
}

// apply 执行一个事件，并按顺序落实 Reduce 返回的副作用。
func (m *replModel) apply(ev terminal.Event) tea.Cmd {
	effects := m.sess.apply(ev)
	m.refresh()

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case terminal.FocusInput:
			cmds = append(cmds, m.input.Focus())
		case terminal.ScrollToEnd:
			m.viewport.GotoBottom()
		case terminal.Navigate:
			cmds = append(cmds, m.navigate(eff.URL))
		}
	}
	return tea.Batch(cmds...)
}

// navigate 页内锚点转为对应命令，其余 URL 交给 Opener 异步打开。
func (m *replModel) navigate(url string) tea.Cmd {
	if section, ok := anchorSection(url); ok {
		if _, known := m.sess.registry().Lookup(section); known {
			return func() tea.Msg { return anchorMsg{command: section} }
		}
		m.status = styleError.Render("未知锚点: " + url)
		return nil
	}
	opener := m.opener
	m.status = "正在打开 " + url
	return func() tea.Msg {
		return openResultMsg{url: url, err: opener.Open(url)}
	}
}

func (m replModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX = msg.X
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		row := msg.Y - titleHeight
		if row < 0 || row >= m.viewport.Height {
			return m, nil
		}
		idx, ok := hitLink(m.regions, msg.X, m.viewport.YOffset+row)
		if !ok {
			return m, nil
		}
		m.selected = idx
		return m, m.apply(terminal.Activate{Index: idx})
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *replModel) activateSelected() (tea.Model, tea.Cmd) {
	if m.selected < 0 {
		m.status = "先用 tab 选择一个链接"
		return *m, nil
	}
	return *m, m.apply(terminal.Activate{Index: m.selected})
}

func (m *replModel) copySelected() (tea.Model, tea.Cmd) {
	e, ok := m.sess.entry(m.selected)
	if !ok || !e.Navigable() {
		m.status = "先用 tab 选择一个链接"
		return *m, nil
	}
	clip := m.clipboard
	url := e.URL
	return *m, func() tea.Msg {
		return copyResultMsg{url: url, err: clip.Copy(url)}
	}
}

// cycleLink 在 transcript 的链接之间移动选中项，首次按 tab 选中最近的链接。
func (m *replModel) cycleLink(delta int) {
	links := m.sess.links()
	if len(links) == 0 {
		m.selected = -1
		m.status = "当前没有可选的链接"
		m.refresh()
		return
	}

	pos := -1
	for i, idx := range links {
		if idx == m.selected {
			pos = i
			break
		}
	}
	switch {
	case pos < 0 && delta > 0:
		pos = len(links) - 1
	case pos < 0:
		pos = 0
	default:
		pos = (pos + delta + len(links)) % len(links)
	}
	m.selected = links[pos]
	m.refresh()
	m.revealSelected()

	if e, ok := m.sess.entry(m.selected); ok {
		m.status = fmt.Sprintf("%s  %s", e.Content, styleDim.Render(e.URL))
	}
}

// revealSelected 保证选中的链接位于可视区域内。
func (m *replModel) revealSelected() {
	for _, r := range m.regions {
		if r.index != m.selected {
			continue
		}
		top := int(r.rect.Top)
		if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(top)
		}
		return
	}
}

func (m *replModel) historyPrev() {
	if len(m.history) == 0 {
		return
	}
	if m.histPos > 0 {
		m.histPos--
	}
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

func (m *replModel) historyNext() {
	if len(m.history) == 0 {
		return
	}
	if m.histPos < len(m.history)-1 {
		m.histPos++
		m.input.SetValue(m.history[m.histPos])
		m.input.CursorEnd()
		return
	}
	m.histPos = len(m.history)
	m.input.Reset()
}

// refresh 重新渲染 transcript 到 viewport，并修正失效的选中项。
func (m *replModel) refresh() {
	if e, ok := m.sess.entry(m.selected); !ok || !e.Navigable() {
		m.selected = -1
	}
	content, regions := renderTranscript(m.sess.entries(), m.viewport.Width, m.selected)
	m.viewport.SetContent(content)
	m.regions = regions
}

func (m *replModel) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.input.Width = maxInt(width-lipgloss.Width(m.input.Prompt)-1, 1)
	m.list.SetWidth(width)
	m.viewport.Width = width
	m.layout()
	m.refresh()
}

// layout 根据补全列表是否可见分配 viewport 高度。
func (m *replModel) layout() {
	listHeight := 0
	if m.showList {
		listHeight = m.list.Height()
	}
	m.viewport.Height = maxInt(m.height-titleHeight-footerHeight-listHeight, 1)
}

func (m *replModel) setShowList(show bool) {
	m.showList = show
	m.layout()
}

// updateSuggestions 根据当前输入更新补全列表。
func (m *replModel) updateSuggestions() {
	prefix := terminal.Normalize(m.input.Value())
	if prefix == "" || strings.ContainsAny(prefix, " \t") {
		m.setShowList(false)
		return
	}

	matches := m.sess.registry().Suggest(prefix)
	// 已完整输入某个命令时不再弹出列表，Enter 直接提交
	if len(matches) == 0 || (len(matches) == 1 && matches[0].Name == prefix) {
		m.setShowList(false)
		return
	}

	var selectedName string
	if it, ok := m.list.SelectedItem().(suggestionItem); ok {
		selectedName = it.info.Name
	}

	items := make([]list.Item, 0, len(matches))
	selectedIndex := 0
	for i, c := range matches {
		items = append(items, suggestionItem{info: c})
		if c.Name == selectedName {
			selectedIndex = i
		}
	}
	m.list.SetItems(items)
	m.list.SetHeight(minInt(len(items), maxListHeight))
	m.list.Select(selectedIndex)
	m.setShowList(true)
}

func (m *replModel) acceptSuggestion() {
	if it, ok := m.list.SelectedItem().(suggestionItem); ok {
		m.input.SetValue(it.info.Name)
		m.input.CursorEnd()
	}
	m.setShowList(false)
}

// View 渲染标题栏、transcript、补全列表与输入框。
func (m replModel) View() string {
	if m.exiting {
		return ""
	}

	status := m.status
	if status == "" {
		status = idleStatusHint
	}

	parts := []string{
		renderTitleBar(m.title, m.width, m.mouseX),
		m.viewport.View(),
	}
	if m.showList {
		parts = append(parts, m.list.View())
	}
	parts = append(parts,
		m.input.View(),
		styleStatus.Render(truncateStatus(status, m.width)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
