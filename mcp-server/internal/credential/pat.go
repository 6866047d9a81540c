package credential

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"devops-mcp/common/biz"

	"golang.org/x/term"
)

// Prompter 在 Out 上提示并读取 PAT
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// ReadPassword 非 nil 时用于终端无回显读取，否则从 In 读一行
	ReadPassword func() ([]byte, error)
}

// Stdin 提示写到 stderr，stdin 是终端时关闭回显
func Stdin() *Prompter {
	p := &Prompter{In: os.Stdin, Out: os.Stderr}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		p.ReadPassword = func() ([]byte, error) {
			return term.ReadPassword(fd)
		}
	}
	return p
}

func (p *Prompter) Read() (string, error) {
	fmt.Fprintln(p.Out, "Enter AzD PAT token:")
	var pat string
	if p.ReadPassword != nil {
		b, err := p.ReadPassword()
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("read personal access token: %w", err)
		}
		pat = string(b)
	} else {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read personal access token: %w", err)
		}
		//stdin 已关闭且没有任何输入
		if err != nil && line == "" {
			return "", biz.ErrNoTerminal
		}
		pat = line
	}
	pat = strings.TrimSpace(pat)
	if pat == "" {
		return "", biz.ErrPatMissing
	}
	return pat, nil
}

// Resolve 配置中的 PAT 优先，否则交互读取；只在启动时调用一次
func Resolve(configured string, p *Prompter) (string, error) {
	if pat := strings.TrimSpace(configured); pat != "" {
		return pat, nil
	}
	if p == nil {
		return "", biz.ErrPatMissing
	}
	return p.Read()
}
