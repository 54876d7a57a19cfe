package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"

	"portfolio-cli/profile"
)

// Opener 在宿主环境中打开外部链接。
type Opener interface {
	Open(url string) error
}

// Clipboard 写入系统剪贴板。
type Clipboard interface {
	Copy(text string) error
}

// osOpener 通过 pkg/browser 调用系统默认浏览器。
type osOpener struct{}

func init() {
	// TUI 占用终端，浏览器进程的输出一律丢弃
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

func (osOpener) Open(url string) error {
	if !profile.IsNavigable(url) || strings.HasPrefix(url, "#") {
		return fmt.Errorf("不是可打开的外部链接: %q", url)
	}
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("打开浏览器失败: %w", err)
	}
	return nil
}

// noopOpener 用于禁用打开链接的场景，只在状态栏展示 URL。
type noopOpener struct{}

func (noopOpener) Open(string) error { return errOpenDisabled }

var errOpenDisabled = fmt.Errorf("已禁用自动打开")

// systemClipboard 基于 atotto/clipboard。
type systemClipboard struct{}

func (systemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("当前环境不支持剪贴板")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("写入剪贴板失败: %w", err)
	}
	return nil
}

// anchorSection 返回页内锚点（#projects）对应的命令名。
func anchorSection(url string) (string, bool) {
	if !strings.HasPrefix(url, "#") || len(url) < 2 {
		return "", false
	}
	return strings.ToLower(url[1:]), true
}
