package terminal

import (
	"fmt"
	"strings"

	"portfolio-cli/profile"
)

const (
	CmdHelp     = "help"
	CmdAbout    = "about"
	CmdSkills   = "skills"
	CmdProjects = "projects"
	CmdContact  = "contact"
	CmdClear    = "clear"
)

// NewDefaultRegistry 构造内置的 6 个命令，内容来自作品集数据。
// 注册顺序即 help 中的展示顺序。
func NewDefaultRegistry(p profile.Profile) *Registry {
	r := NewRegistry()
	r.Register(CmdHelp, "Show available commands", helpHandler(r))
	r.Register(CmdAbout, "Learn about me", aboutHandler(p))
	r.Register(CmdSkills, "View my technical skills", skillsHandler(p))
	r.Register(CmdProjects, "See my projects", projectsHandler(p))
	r.Register(CmdContact, "Get my contact information", contactHandler(p))
	r.Register(CmdClear, "Clear the terminal", clearHandler)
	return r
}

// helpHandler 在调用时读取注册表，因此会列出自身。
func helpHandler(r *Registry) Handler {
	return func() Output {
		cmds := r.Commands()
		entries := make([]Entry, 0, len(cmds)+1)
		entries = append(entries, Info("Available commands:"))
		for _, c := range cmds {
			entries = append(entries, Command(fmt.Sprintf("%s - %s", c.Name, c.Description)))
		}
		return Output{Entries: entries}
	}
}

func aboutHandler(p profile.Profile) Handler {
	bio := append([]string(nil), p.Bio...)
	return func() Output {
		entries := []Entry{Info("About Me:")}
		for _, line := range bio {
			entries = append(entries, Success(line))
		}
		return Output{Entries: entries}
	}
}

func skillsHandler(p profile.Profile) Handler {
	lines := make([]string, 0, len(p.Skills))
	for _, cat := range p.Skills {
		lines = append(lines, fmt.Sprintf("%s: %s", cat.Name, strings.Join(cat.Skills, ", ")))
	}
	return func() Output {
		entries := []Entry{Info("My Skills:")}
		for _, line := range lines {
			entries = append(entries, Success(line))
		}
		return Output{Entries: entries}
	}
}

func projectsHandler(p profile.Profile) Handler {
	projects := append([]profile.Project(nil), p.Projects...)
	return func() Output {
		entries := []Entry{Info("My Projects:")}
		for _, proj := range projects {
			entries = append(entries, Link(proj.Title, proj.URL))
			if proj.Demo != "" {
				entries = append(entries, Link(proj.Title+" (demo)", proj.Demo))
			}
		}
		return Output{Entries: entries}
	}
}

func contactHandler(p profile.Profile) Handler {
	email := p.Email
	socials := append([]profile.Link(nil), p.Socials...)
	return func() Output {
		entries := []Entry{
			Info("Contact Information:"),
			Success("Email: " + email),
		}
		for _, l := range socials {
			entries = append(entries, Link(l.Name, l.URL))
		}
		return Output{Entries: entries}
	}
}

func clearHandler() Output {
	return Output{Replace: true}
}

// SeedEntries 返回会话开始时的两条欢迎信息。
func SeedEntries(owner string) []Entry {
	return []Entry{
		Info(fmt.Sprintf("Welcome to %s's interactive terminal", owner)),
		Info(`Type "help" to see available commands`),
	}
}
