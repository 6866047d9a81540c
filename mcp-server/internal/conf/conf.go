package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"devops-mcp/core/devops"
	"devops-mcp/core/jokes"

	"gopkg.in/yaml.v3"
)

// DefaultPath 与 thunder 读取的配置文件相同
const DefaultPath = "etc/config.yml"

const (
	EnvConfigPath = "DEVOPS_MCP_CONFIG"
	EnvPAT        = "AZURE_DEVOPS_PAT"
)

// Config etc/config.yml 中 thunder 之外的业务配置
type Config struct {
	Devops DevopsConfig `yaml:"devops"`
	Joke   JokeConfig   `yaml:"joke"`
	Mcp    McpConfig    `yaml:"mcp"`
}

type DevopsConfig struct {
	BaseURL    string        `yaml:"baseUrl"`
	APIVersion string        `yaml:"apiVersion"`
	PAT        string        `yaml:"pat"`
	Timeout    time.Duration `yaml:"timeout"`
}

type JokeConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type McpConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	BaseURL     string `yaml:"baseUrl"`
	SSEPath     string `yaml:"ssePath"`
	MessagePath string `yaml:"messagePath"`
	StreamPath  string `yaml:"streamPath"`
}

func Default() *Config {
	c := &Config{}
	c.withDefaults()
	return c
}

// Path DEVOPS_MCP_CONFIG 优先
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load 读取配置文件，文件不存在时使用默认值，AZURE_DEVOPS_PAT 覆盖文件中的 pat
func Load(path string) (*Config, error) {
	c := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if pat := os.Getenv(EnvPAT); pat != "" {
		c.Devops.PAT = pat
	}
	c.withDefaults()
	return c, nil
}

func (c *Config) withDefaults() {
	setDefault(&c.Devops.BaseURL, devops.DefaultBaseURL)
	setDefault(&c.Devops.APIVersion, devops.DefaultAPIVersion)
	if c.Devops.Timeout <= 0 {
		c.Devops.Timeout = 30 * time.Second
	}
	c.Devops.PAT = strings.TrimSpace(c.Devops.PAT)
	setDefault(&c.Joke.URL, jokes.DefaultURL)
	if c.Joke.Timeout <= 0 {
		c.Joke.Timeout = 10 * time.Second
	}
	setDefault(&c.Mcp.Name, "devops mcp server")
	setDefault(&c.Mcp.Version, "1.0.0")
	setDefault(&c.Mcp.BaseURL, "http://localhost:3001")
	setDefault(&c.Mcp.SSEPath, "/sse")
	setDefault(&c.Mcp.MessagePath, "/message")
	setDefault(&c.Mcp.StreamPath, "/mcp")
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}
