package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"portfolio-cli/motion"
	"portfolio-cli/terminal"
)

// linkRegion 记录链接条目在 viewport 内容中占据的区域（行坐标），用于鼠标命中测试。
type linkRegion struct {
	index int
	rect  motion.Rect
}

// renderTranscript 将 transcript 渲染为 viewport 内容，selected 为高亮的链接下标（-1 表示无）。
func renderTranscript(entries []terminal.Entry, width, selected int) (string, []linkRegion) {
	var (
		blocks  []string
		regions []linkRegion
		row     int
	)
	for i, e := range entries {
		style := entryStyle(e.Kind)
		if e.Kind == terminal.KindLink && i == selected {
			style = styleSelected
		}
		if width > 0 {
			style = style.MaxWidth(width).Width(width)
		}
		block := style.Render(sanitizeLine(e.Content))
		height := lipgloss.Height(block)
		if e.Navigable() {
			regions = append(regions, linkRegion{
				index: i,
				rect: motion.Rect{
					Left:   0,
					Top:    float64(row),
					Width:  float64(maxInt(lipgloss.Width(block)-1, 0)),
					Height: float64(height - 1),
				},
			})
		}
		blocks = append(blocks, block)
		row += height
	}
	return strings.Join(blocks, "\n"), regions
}

// hitLink 返回内容坐标 (x, y) 处的链接下标。
func hitLink(regions []linkRegion, x, y int) (int, bool) {
	p := motion.Point{X: float64(x), Y: float64(y)}
	for _, r := range regions {
		if r.rect.Contains(p) {
			return r.index, true
		}
	}
	return 0, false
}

const (
	titleGlowRadius = 16
	// 标题文字随鼠标做视差位移，最多偏移 titleShiftMax 列
	titleShiftMax    = 2
	titleShiftFactor = 0.05
)

// titleShift 返回标题文字相对默认位置的列偏移（mouseX<0 表示无鼠标）。
func titleShift(width, mouseX int) int {
	if mouseX < 0 || width <= 0 {
		return 0
	}
	bar := motion.Rect{Width: float64(width), Height: 1}
	off := motion.Offset(motion.Point{X: float64(mouseX), Y: 0.5}, bar, titleShiftFactor)
	shift := int(math.Round(off.X))
	if shift > titleShiftMax {
		return titleShiftMax
	}
	if shift < -titleShiftMax {
		return -titleShiftMax
	}
	return shift
}

// renderTitleBar 渲染窗口标题栏，背景亮度与标题位置随鼠标列变化（mouseX<0 表示无鼠标）。
func renderTitleBar(title string, width, mouseX int) string {
	if width <= 0 {
		return styleTitleBar.Render(" " + windowDots + "  " + title + " ")
	}
	lead := 1 + titleShiftMax + titleShift(width, mouseX)
	fixed := 1 + lipgloss.Width(windowDots) + lead
	text := title + " "
	pad := width - fixed - ansi.StringWidth(text)
	if pad < 0 {
		text = ansi.Truncate(text, maxInt(width-fixed, 0), "…")
		pad = maxInt(width-fixed-ansi.StringWidth(text), 0)
	}

	var b strings.Builder
	b.WriteString(styleTitleBar.Render(" "))
	b.WriteString(styleTitleBar.Render(windowDots))
	b.WriteString(styleTitleBar.Render(strings.Repeat(" ", lead)))
	b.WriteString(styleTitleBar.Render(text))

	start := width - pad
	for col := start; col < width; col++ {
		glow := 0.0
		if mouseX >= 0 {
			glow = motion.Falloff(math.Abs(float64(col-mouseX)), titleGlowRadius)
		}
		level := int(math.Round(glow * float64(len(titleGlow)-1)))
		b.WriteString(lipgloss.NewStyle().Background(titleGlow[level]).Render(" "))
	}
	return b.String()
}

// transcriptPlain 把条目转为纯文本行，链接附带 URL。
func transcriptPlain(entries []terminal.Entry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Navigable() {
			lines = append(lines, fmt.Sprintf("%s <%s>", e.Content, e.URL))
			continue
		}
		lines = append(lines, e.Content)
	}
	return lines
}

// transcriptMarkdown 把条目转为 Markdown，每次回显开启一个新段落。
func transcriptMarkdown(entries []terminal.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if e.Kind == terminal.KindUser && i > 0 {
			b.WriteString("\n")
		}
		switch e.Kind {
		case terminal.KindUser:
			fmt.Fprintf(&b, "`%s`", strings.ReplaceAll(e.Content, "`", "'"))
		case terminal.KindInfo:
			fmt.Fprintf(&b, "**%s**", escapeMarkdown(e.Content))
		case terminal.KindCommand:
			fmt.Fprintf(&b, "- %s", escapeMarkdown(e.Content))
		case terminal.KindError:
			fmt.Fprintf(&b, "*%s*", escapeMarkdown(e.Content))
		case terminal.KindLink:
			fmt.Fprintf(&b, "[%s](%s)", escapeMarkdown(e.Content), e.URL)
		default:
			b.WriteString(escapeMarkdown(e.Content))
		}
		// 行尾两个空格为硬换行，保持一条记录一行
		b.WriteString("  \n")
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`, "`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// renderMarkdown 使用 glamour 渲染 Markdown，失败时回退为原文。
func renderMarkdown(md, theme string, wordWrap int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(theme)}
	if wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wordWrap))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// sanitizeLine 移除 \r 等控制字符，避免破坏终端输出。
func sanitizeLine(line string) string {
	line = strings.ReplaceAll(line, "\r", "")
	line = strings.ReplaceAll(line, "\t", "    ")
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 0x7f {
			return -1
		}
		return r
	}, line)
}

// truncateStatus 把状态行截断到一行。
func truncateStatus(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
