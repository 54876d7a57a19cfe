package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"portfolio-cli/logging"
	"portfolio-cli/terminal"
)

func init() {
	Register(&TUICommand{})
	Register(&RunCommand{})
	Register(&CommandsCommand{})
	Register(&ConfigCommand{})
	Register(&HelpCommand{})
}

// TUICommand 启动交互终端。
type TUICommand struct{}

func (c *TUICommand) Name() string        { return "tui" }
func (c *TUICommand) Aliases() []string   { return []string{"repl"} }
func (c *TUICommand) Description() string { return "进入交互终端" }
func (c *TUICommand) Help() string {
	return "用法: tui\n输出不是 TTY 时等价于 run -plain，从 stdin 读取命令"
}

func (c *TUICommand) Execute(ctx *CommandContext) CommandResult {
	if !isTerminal(ctx.Stdout) || !isTerminal(ctx.Stdin) {
		logging.L().Infow("stdout is not a terminal, falling back to batch mode")
		return (&RunCommand{}).Execute(&CommandContext{
			Context: ctx.Context,
			Config:  ctx.Config,
			Args:    []string{"-plain"},
			Stdin:   ctx.Stdin,
			Stdout:  ctx.Stdout,
			Stderr:  ctx.Stderr,
		})
	}

	p, err := loadProfile(ctx.Config)
	if err != nil {
		return CommandResult{Error: err}
	}

	sess := newSession(p)
	var opener Opener = osOpener{}
	if ctx.Config != nil && ctx.Config.NoOpen {
		opener = noopOpener{}
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx.Context)}
	if ctx.Config == nil || !ctx.Config.NoMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	sess.log.Infow("tui session started", "owner", p.Owner)
	model := newReplModel(sess, opener, systemClipboard{})
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return CommandResult{Error: fmt.Errorf("运行 TUI 失败: %w", err)}
	}
	sess.log.Infow("tui session ended", "entries", sess.state.Transcript.Len())
	return CommandResult{}
}

// RunCommand 以批处理方式依次提交命令。
type RunCommand struct{}

func (c *RunCommand) Name() string        { return "run" }
func (c *RunCommand) Aliases() []string   { return nil }
func (c *RunCommand) Description() string { return "依次执行命令并打印 transcript" }
func (c *RunCommand) Help() string {
	return "用法: run [-plain] [-width N] <命令>...\n示例: run help projects"
}

func (c *RunCommand) Execute(ctx *CommandContext) CommandResult {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(ctx.Stderr)
	plain := fs.Bool("plain", false, "输出纯文本，不经 Markdown 渲染")
	width := fs.Int("width", defaultWidth, "Markdown 渲染的换行宽度")
	if err := fs.Parse(ctx.Args); err != nil {
		return CommandResult{Error: fmt.Errorf("解析参数失败: %w", err), ExitCode: 2}
	}

	lines := fs.Args()
	if len(lines) == 0 && ctx.Stdin != nil {
		read, err := readLines(ctx.Stdin)
		if err != nil {
			return CommandResult{Error: err}
		}
		lines = read
	}

	p, err := loadProfile(ctx.Config)
	if err != nil {
		return CommandResult{Error: err}
	}

	sess := newSession(p)
	runBatch(sess, lines)

	entries := sess.entries()
	if *plain {
		return CommandResult{Lines: transcriptPlain(entries)}
	}
	theme := "dark"
	if ctx.Config != nil && ctx.Config.Theme != "" {
		theme = ctx.Config.Theme
	}
	out := renderMarkdown(transcriptMarkdown(entries), theme, *width)
	if out == "" {
		return CommandResult{}
	}
	return CommandResult{Lines: strings.Split(out, "\n")}
}

// runBatch 按交互时的事件顺序提交每一行。
func runBatch(sess *session, lines []string) {
	sess.apply(terminal.Mount{})
	for _, line := range lines {
		sess.apply(terminal.Edit{Text: line})
		sess.apply(terminal.Submit{Text: line})
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取输入失败: %w", err)
	}
	return lines, nil
}

// CommandsCommand 列出终端内的命令。
type CommandsCommand struct{}

func (c *CommandsCommand) Name() string        { return "commands" }
func (c *CommandsCommand) Aliases() []string   { return []string{"ls"} }
func (c *CommandsCommand) Description() string { return "列出终端内可用的命令" }
func (c *CommandsCommand) Help() string        { return "用法: commands" }

func (c *CommandsCommand) Execute(ctx *CommandContext) CommandResult {
	p, err := loadProfile(ctx.Config)
	if err != nil {
		return CommandResult{Error: err}
	}
	reg := terminal.NewDefaultRegistry(p)
	var lines []string
	for _, info := range reg.Commands() {
		lines = append(lines, fmt.Sprintf("  %-10s %s", info.Name, info.Description))
	}
	return CommandResult{Lines: lines}
}

// ConfigCommand 打印当前配置。
type ConfigCommand struct{}

func (c *ConfigCommand) Name() string        { return "config" }
func (c *ConfigCommand) Aliases() []string   { return nil }
func (c *ConfigCommand) Description() string { return "打印当前生效的配置" }
func (c *ConfigCommand) Help() string        { return "用法: config" }

func (c *ConfigCommand) Execute(ctx *CommandContext) CommandResult {
	if ctx.Config == nil {
		return CommandResult{Error: fmt.Errorf("配置未加载")}
	}
	return CommandResult{Lines: []string{ctx.Config.Summary()}}
}

// HelpCommand 打印用法；带参数时打印对应子命令的帮助。
type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Aliases() []string   { return nil }
func (c *HelpCommand) Description() string { return "显示帮助信息" }
func (c *HelpCommand) Help() string        { return "用法: help [子命令]" }

func (c *HelpCommand) Execute(ctx *CommandContext) CommandResult {
	if len(ctx.Args) > 0 {
		cmd := GetCommand(ctx.Args[0])
		if cmd == nil {
			return CommandResult{Error: fmt.Errorf("未知子命令: %s", ctx.Args[0])}
		}
		return CommandResult{Lines: strings.Split(cmd.Help(), "\n")}
	}

	lines := strings.Split(strings.TrimRight(usageText(), "\n"), "\n")
	lines = append(lines, "", "子命令:")
	for _, cmd := range ListCommands() {
		lines = append(lines, fmt.Sprintf("  %-10s %s", cmd.Name(), cmd.Description()))
	}
	return CommandResult{Lines: lines}
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
