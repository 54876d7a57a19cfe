package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"portfolio-cli/config"
	"portfolio-cli/logging"
	"portfolio-cli/profile"
)

const appName = "portfolio-cli"

// Run 是 portfolio-cli 的入口，解析子命令后交给已注册的 CLICommand 执行。
//   - 直接运行时进入交互终端；
//   - `run` 子命令以批处理方式执行若干命令并打印 transcript。
func Run() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	name := "tui"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	if name == "-h" || name == "--help" {
		name = "help"
	}

	cmd := GetCommand(name)
	if cmd == nil {
		fmt.Fprintf(stderr, "未知子命令: %s\n\n", name)
		fmt.Fprint(stderr, usageText())
		return 1
	}

	cfg := config.Get()
	logPath := logging.Init(appName, logging.Options{
		File:  cfg.LogFile,
		Level: cfg.LogLevel,
		Dev:   cfg.Dev(),
	})
	defer logging.Sync()
	logging.L().Infow("portfolio-cli starting", "command", cmd.Name(), "config", cfg.Summary(), "log", logPath)

	res := cmd.Execute(&CommandContext{
		Context: context.Background(),
		Config:  cfg,
		Args:    args,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
	})
	return finish(cmd, res, stdout, stderr)
}

// finish 打印命令输出并换算退出码。
func finish(cmd CLICommand, res CommandResult, stdout, stderr io.Writer) int {
	for _, line := range res.Lines {
		fmt.Fprintln(stdout, line)
	}
	if res.Error != nil {
		logging.L().Errorw("command failed", "command", cmd.Name(), "error", res.Error)
		fmt.Fprintf(stderr, "%s 失败: %v\n", cmd.Name(), res.Error)
		if res.ExitCode == 0 {
			return 1
		}
	}
	return res.ExitCode
}

// loadProfile 读取配置的 profile 文件，未配置时使用内置数据。
func loadProfile(cfg *config.Config) (profile.Profile, error) {
	if cfg == nil || cfg.ProfilePath == "" {
		return profile.Default(), nil
	}
	p, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("加载 profile 失败: %w", err)
	}
	return p, nil
}

func usageText() string {
	prog := filepath.Base(os.Args[0])
	return fmt.Sprintf(`portfolio-cli: 终端里的个人作品集

用法:
  %[1]s                       # 进入交互终端
  %[1]s tui
  %[1]s run [-plain] [-width N] <命令>...
  %[1]s commands
  %[1]s config
  %[1]s help

子命令说明:
  tui        交互终端。输出不是 TTY 时退化为 run -plain，从 stdin 逐行读取命令。
  run        依次提交参数中的命令（无参数时读取 stdin），打印最终 transcript。
  commands   列出终端内可用的命令。
  config     打印当前生效的配置。

环境变量:
  PORTFOLIO_CLI_PROFILE    profile YAML 路径（默认 ~/.portfolio-cli/profile.yaml）
  PORTFOLIO_CLI_LOG_FILE   日志文件路径
  PORTFOLIO_CLI_LOG_LEVEL  debug|info|warn|error
  PORTFOLIO_CLI_ENV        dev|prod
  PORTFOLIO_CLI_NO_MOUSE   禁用鼠标
  PORTFOLIO_CLI_NO_OPEN    不自动打开外部链接
  PORTFOLIO_CLI_THEME      glamour 主题（dark|light|notty...）

示例:
  %[1]s
  %[1]s run help projects
  echo contact | %[1]s run -plain
`, prog)
}
