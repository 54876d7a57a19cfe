package cli

import (
	"context"
	"io"
	"sort"

	"portfolio-cli/config"
)

// CommandContext 包含执行子命令所需的上下文信息。
type CommandContext struct {
	Context context.Context
	Config  *config.Config
	Args    []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// CommandResult 包含子命令执行的结果。
type CommandResult struct {
	Lines    []string
	Error    error
	ExitCode int
}

// CLICommand 定义了所有顶层子命令必须实现的接口。
type CLICommand interface {
	Name() string
	Aliases() []string
	Description() string
	Help() string
	Execute(ctx *CommandContext) CommandResult
}

// Registry 负责管理所有顶层子命令。
type Registry struct {
	commands map[string]CLICommand
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CLICommand),
	}
}

func (r *Registry) Register(cmd CLICommand) {
	r.commands[cmd.Name()] = cmd
	for _, alias := range cmd.Aliases() {
		r.commands[alias] = cmd
	}
}

func (r *Registry) Get(name string) CLICommand {
	return r.commands[name]
}

func (r *Registry) List() []CLICommand {
	var cmds []CLICommand
	seen := make(map[CLICommand]bool)
	for _, cmd := range r.commands {
		if !seen[cmd] {
			cmds = append(cmds, cmd)
			seen[cmd] = true
		}
	}

	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})

	return cmds
}

var globalRegistry = NewRegistry()

func Register(cmd CLICommand) {
	globalRegistry.Register(cmd)
}

func GetCommand(name string) CLICommand {
	return globalRegistry.Get(name)
}

func ListCommands() []CLICommand {
	return globalRegistry.List()
}
