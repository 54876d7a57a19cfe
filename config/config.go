package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config 汇总所有通过环境变量与配置文件控制的运行配置。
// 统一集中读取，方便日志输出与调试。
type Config struct {
	ProfilePath string
	LogFile     string
	LogLevel    string
	Env         string
	NoMouse     bool
	NoOpen      bool
	Theme       string

	// 来自 ~/.portfolio-cli/config.yaml 的设置，环境变量优先
	File *FileConfig
}

// FileConfig 是可选配置文件的结构。
type FileConfig struct {
	Profile string `yaml:"profile"`
	Theme   string `yaml:"theme"`
	Log     struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Mouse *bool `yaml:"mouse,omitempty"`
}

const (
	envPrefix    = "PORTFOLIO_CLI_"
	defaultTheme = "dark"
	dirName      = ".portfolio-cli"
)

var (
	once sync.Once
	cfg  Config
)

// Get 返回全局配置（延迟加载）。
func Get() *Config {
	once.Do(func() {
		home, _ := os.UserHomeDir()
		cfg = Load(os.Getenv, home)
	})
	return &cfg
}

// Load 根据环境变量查找函数与 home 目录构造配置，便于测试注入。
func Load(getenv func(string) string, home string) Config {
	c := loadFromEnv(getenv)
	if home != "" {
		c.File = loadFromFile(home)
		c.applyFile(home)
	}
	if c.Theme == "" {
		c.Theme = defaultTheme
	}
	return c
}

func loadFromEnv(getenv func(string) string) Config {
	get := func(key string) string { return strings.TrimSpace(getenv(envPrefix + key)) }
	return Config{
		ProfilePath: get("PROFILE"),
		LogFile:     get("LOG_FILE"),
		LogLevel:    get("LOG_LEVEL"),
		Env:         strings.ToLower(get("ENV")),
		NoMouse:     isTruthy(get("NO_MOUSE")),
		NoOpen:      isTruthy(get("NO_OPEN")),
		Theme:       get("THEME"),
	}
}

func loadFromFile(home string) *FileConfig {
	dir := filepath.Join(home, dirName)
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		// 尝试读取 config.yml
		data, err = os.ReadFile(filepath.Join(dir, "config.yml"))
		if err != nil {
			return nil
		}
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		fmt.Fprintf(os.Stderr, "解析配置文件失败: %v\n", err)
		return nil
	}
	return &fc
}

// applyFile 用配置文件补齐环境变量未设置的字段；作品集路径最后回退到默认位置。
func (c *Config) applyFile(home string) {
	if fc := c.File; fc != nil {
		if c.ProfilePath == "" {
			c.ProfilePath = expandHome(fc.Profile, home)
		}
		if c.Theme == "" {
			c.Theme = fc.Theme
		}
		if c.LogFile == "" {
			c.LogFile = expandHome(fc.Log.File, home)
		}
		if c.LogLevel == "" {
			c.LogLevel = fc.Log.Level
		}
		if fc.Mouse != nil && !*fc.Mouse {
			c.NoMouse = true
		}
	}
	if c.ProfilePath == "" {
		def := filepath.Join(home, dirName, "profile.yaml")
		if _, err := os.Stat(def); err == nil {
			c.ProfilePath = def
		}
	}
}

// Dev 报告是否处于开发模式（影响日志格式与默认级别）。
func (c Config) Dev() bool {
	return c.Env == "dev" || c.Env == "development"
}

// Summary 返回可安全打印的配置摘要。
func (c Config) Summary() string {
	return fmt.Sprintf(
		"profile=%s log_file=%s log_level=%s env=%s theme=%s mouse=%t open=%t",
		emptyAsDefault(c.ProfilePath, "(builtin)"),
		emptyAsDefault(c.LogFile, "(default)"),
		emptyAsDefault(c.LogLevel, "(default)"),
		emptyAsDefault(c.Env, "prod"),
		emptyAsDefault(c.Theme, defaultTheme),
		!c.NoMouse,
		!c.NoOpen,
	)
}

func emptyAsDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func expandHome(path, home string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
