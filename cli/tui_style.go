package cli

import (
	"github.com/charmbracelet/lipgloss"

	"portfolio-cli/terminal"
)

// 终端样式集中管理，便于 TUI 统一调色。
var (
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
	styleIndigo   = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))
	styleIndigoLt = lipgloss.NewStyle().Foreground(lipgloss.Color("#a5b4fc"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	styleUser     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db"))
	stylePrompt   = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8")).Bold(true)
	styleInput    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db"))
	styleStatus   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#818cf8"))
	styleTitleBar = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Background(lipgloss.Color("#1f2937"))

	// 标题栏随鼠标位置变化的渐变，按亮度从低到高
	titleGlow = []lipgloss.Color{"#1f2937", "#312e81", "#4338ca", "#6366f1"}

	// 标题栏左侧的三个窗口按钮
	windowDots = lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Render("●"), " ",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")).Render("●"), " ",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Render("●"),
	)
)

// entryStyle 返回条目类型对应的样式。
func entryStyle(kind terminal.Kind) lipgloss.Style {
	switch kind {
	case terminal.KindCommand:
		return styleIndigo
	case terminal.KindSuccess:
		return styleIndigoLt
	case terminal.KindError:
		return styleError
	case terminal.KindInfo:
		return styleIndigo.Bold(true)
	case terminal.KindUser:
		return styleUser
	case terminal.KindLink:
		return styleIndigo.Underline(true)
	default:
		return styleUser
	}
}
