package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile 是终端命令展示的静态数据（个人简介、技能、项目、联系方式）。
// 终端本身不关心数据来源，只负责把它投影成条目。
type Profile struct {
	Owner    string          `yaml:"owner"`
	Handle   string          `yaml:"handle"`
	Bio      []string        `yaml:"bio"`
	Email    string          `yaml:"email"`
	Skills   []SkillCategory `yaml:"skills"`
	Projects []Project       `yaml:"projects"`
	Socials  []Link          `yaml:"socials"`
}

type SkillCategory struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

type Project struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
	Demo  string `yaml:"demo,omitempty"`
}

type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Default 返回内置的作品集内容。
func Default() Profile {
	return Profile{
		Owner:  "Arpit Rajput",
		Handle: "arpit",
		Bio: []string{
			"I am a passionate full-stack developer with expertise in modern web technologies.",
			"I love creating elegant solutions to complex problems and building intuitive user experiences.",
		},
		Email: "arpit.rajput871@gmail.com",
		Skills: []SkillCategory{
			{Name: "Frontend", Skills: []string{"React", "Next.js", "TypeScript", "Tailwind CSS", "Redux"}},
			{Name: "Backend", Skills: []string{"Node.js", "Express", "Python", "Django", "RESTful APIs"}},
			{Name: "Database & DevOps", Skills: []string{"MongoDB", "PostgreSQL", "Docker", "AWS", "CI/CD"}},
			{Name: "Other", Skills: []string{"Git", "Webpack", "Jest", "Figma", "Agile/Scrum"}},
		},
		Projects: []Project{
			{Title: "SolveAI", URL: "https://github.com/yourusername/solveai", Demo: "https://solveai.netlify.app/"},
			{Title: "StudyNotion", URL: "https://github.com/yourusername/studynotion", Demo: "https://study-notion-mohan.vercel.app/"},
			{Title: "Brainwave AI", URL: "https://github.com/yourusername/brainwave", Demo: "https://brainwave-jet-six.vercel.app/"},
			{Title: "T-Shirt Customizer", URL: "https://github.com/yourusername/tshirt-customizer", Demo: "https://t-shirt-customization-ecru.vercel.app/"},
			{Title: "Zentry Gaming", URL: "https://github.com/yourusername/zentry", Demo: "https://zentry-three.vercel.app/"},
			{Title: "Apple Website Clone", URL: "https://github.com/yourusername/apple-clone", Demo: "https://i-phone-peach-ten.vercel.app/#highlights"},
		},
		Socials: []Link{
			{Name: "GitHub", URL: "https://github.com/ARPIT871"},
			{Name: "LinkedIn", URL: "https://www.linkedin.com/in/arpit-rajput-7420b1217/"},
			{Name: "Twitter", URL: "https://twitter.com/arpitrajput7828"},
			{Name: "Instagram", URL: "https://instagram.com/arpit871"},
		},
	}
}

// Load 读取 YAML 作品集文件，未填写的字段回退到 Default。
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("读取作品集文件失败: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("解析作品集文件失败: %w", err)
	}
	p = p.withDefaults(Default())
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) withDefaults(def Profile) Profile {
	if strings.TrimSpace(p.Owner) == "" {
		p.Owner = def.Owner
	}
	if strings.TrimSpace(p.Handle) == "" {
		p.Handle = def.Handle
	}
	if len(p.Bio) == 0 {
		p.Bio = def.Bio
	}
	if strings.TrimSpace(p.Email) == "" {
		p.Email = def.Email
	}
	if len(p.Skills) == 0 {
		p.Skills = def.Skills
	}
	if len(p.Projects) == 0 {
		p.Projects = def.Projects
	}
	if len(p.Socials) == 0 {
		p.Socials = def.Socials
	}
	return p
}

// Validate 校验所有链接都有名称和可导航的 URL。
func (p Profile) Validate() error {
	for _, proj := range p.Projects {
		if strings.TrimSpace(proj.Title) == "" {
			return fmt.Errorf("项目缺少标题 (url=%s)", proj.URL)
		}
		if !IsNavigable(proj.URL) {
			return fmt.Errorf("项目 %s 的链接无效: %q", proj.Title, proj.URL)
		}
		if proj.Demo != "" && !IsNavigable(proj.Demo) {
			return fmt.Errorf("项目 %s 的 demo 链接无效: %q", proj.Title, proj.Demo)
		}
	}
	for _, l := range p.Socials {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("社交链接缺少名称 (url=%s)", l.URL)
		}
		if !IsNavigable(l.URL) {
			return fmt.Errorf("社交链接 %s 无效: %q", l.Name, l.URL)
		}
	}
	return nil
}

// IsNavigable 判断 URL 是否为页内锚点或 http(s)/mailto 链接。
func IsNavigable(url string) bool {
	url = strings.TrimSpace(url)
	switch {
	case len(url) > 1 && strings.HasPrefix(url, "#"):
		return true
	case strings.HasPrefix(url, "https://"):
		return len(url) > len("https://")
	case strings.HasPrefix(url, "http://"):
		return len(url) > len("http://")
	case strings.HasPrefix(url, "mailto:"):
		return len(url) > len("mailto:")
	}
	return false
}
