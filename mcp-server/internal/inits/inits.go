package inits

import (
	"fmt"
	"net/http"

	"devops-mcp/common/logger"
	"devops-mcp/core/ai/tools"
	"devops-mcp/core/devops"
	"devops-mcp/core/jokes"
	"devops-mcp/core/workitems"
	"devops-mcp/mcp-server/internal/conf"
	"devops-mcp/mcp-server/internal/credential"
	"devops-mcp/mcp-server/internal/router"
	"devops-mcp/mcp-server/internal/tool"

	"github.com/mszlu521/thunder/config"
	"github.com/mszlu521/thunder/logs"
	"github.com/mszlu521/thunder/server"
)

func Init(s *server.Server, _ *config.Config) error {
	//etc/config.yml 中的业务配置
	c, err := conf.Load(conf.Path())
	if err != nil {
		return err
	}
	//PAT 只在启动时读取一次，之后显式传给 devops 客户端
	pat, err := credential.Resolve(c.Devops.PAT, credential.Stdin())
	if err != nil {
		return fmt.Errorf("resolve personal access token: %w", err)
	}
	registry := register(s, c, pat, logger.Thunder)
	logs.Infof("mcp server %s registered %d tools, sse=%s stream=%s", c.Mcp.Name, len(registry.Tools()), c.Mcp.SSEPath, c.Mcp.StreamPath)
	return nil
}

// register 注册事件与 mcp 路由，返回工具注册表
func register(s *server.Server, c *conf.Config, pat string, log logger.Logger) *tools.Registry {
	registry := registerTools(c, pat)
	s.RegisterRouters(
		&router.Event{Registry: registry, Log: log},
		&router.McpRouter{
			Conf:  c.Mcp,
			Tools: tool.FromRegistry(registry),
			Log:   log,
		},
	)
	return registry
}

func registerTools(c *conf.Config, pat string) *tools.Registry {
	factory := devops.NewFactory(devops.Config{
		BaseURL:    c.Devops.BaseURL,
		Token:      pat,
		APIVersion: c.Devops.APIVersion,
		HTTPClient: &http.Client{Timeout: c.Devops.Timeout},
	})
	trackers := func(organization string) (workitems.Tracker, error) {
		client, err := factory.Client(organization)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return tools.NewRegistry(
		tools.NewWorkItemTool(&tools.WorkItemConfig{Trackers: trackers}),
		tools.NewJokeTool(jokes.NewClient(&jokes.Config{
			URL:        c.Joke.URL,
			HTTPClient: &http.Client{Timeout: c.Joke.Timeout},
		}), nil),
	)
}
