package tools

import (
	"context"
	"errors"

	"devops-mcp/common/logger"
	"devops-mcp/core/jokes"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const JokeToolName = "get_chuck_norris_joke"

// JokeTool 从公共 API 获取一条 Chuck Norris 笑话
type JokeTool struct {
	client *jokes.Client
	log    logger.Logger
}

func NewJokeTool(client *jokes.Client, log logger.Logger) *JokeTool {
	if client == nil {
		client = jokes.NewClient(nil)
	}
	return &JokeTool{client: client, log: logger.OrDefault(log)}
}

func (j *JokeTool) Params() map[string]*schema.ParameterInfo {
	return map[string]*schema.ParameterInfo{}
}

func (j *JokeTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: JokeToolName,
		Desc: "Returns a random Chuck Norris joke or quote fetched from a public API.",
	}, nil
}

func (j *JokeTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	joke, err := j.client.Random(ctx)
	if errors.Is(err, jokes.ErrNoJoke) {
		return "No joke received from API.", nil
	}
	if err != nil {
		j.log.Warnf("fetch joke error: %v", err)
		return "Error fetching joke: " + err.Error(), nil
	}
	return joke, nil
}
