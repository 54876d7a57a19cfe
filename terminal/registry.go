package terminal

import (
	"fmt"
	"strings"
)

// Output 是命令处理函数的结果。
// Replace 为 true 时，分发器用 Entries 整体替换 transcript（包括刚写入的回显），
// 否则把 Entries 追加到回显之后。
type Output struct {
	Entries []Entry
	Replace bool
}

// Handler 生成命令的输出。命令不接受参数。
type Handler func() Output

// CommandInfo 描述一个已注册命令，用于 help 与补全。
type CommandInfo struct {
	Name        string
	Description string
}

// Registry 把小写命令名映射到处理函数。构造完成后只读。
type Registry struct {
	handlers map[string]Handler
	commands []CommandInfo
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register 注册命令。名称必须已规范化（小写、无空白），重复注册会 panic。
func (r *Registry) Register(name, description string, h Handler) {
	if h == nil {
		panic(fmt.Sprintf("command %s has nil handler", name))
	}
	if name == "" || name != Normalize(name) || strings.ContainsAny(name, " \t\n") {
		panic(fmt.Sprintf("command name %q is not normalized", name))
	}
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("command %s already registered", name))
	}
	r.handlers[name] = h
	r.commands = append(r.commands, CommandInfo{Name: name, Description: description})
}

// Lookup 按规范化后的名称查找处理函数，区分大小写，不修改注册表。
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Commands 按注册顺序返回所有命令。
func (r *Registry) Commands() []CommandInfo {
	out := make([]CommandInfo, len(r.commands))
	copy(out, r.commands)
	return out
}

// Suggest 返回名称以 prefix 开头的命令（按注册顺序），prefix 会先规范化。
func (r *Registry) Suggest(prefix string) []CommandInfo {
	prefix = Normalize(prefix)
	var out []CommandInfo
	for _, c := range r.commands {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Normalize 去除首尾空白并转为小写，得到用于查找的命令名。
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
