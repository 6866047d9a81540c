package mcps

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mszlu521/thunder/ai/einos"
)

// Connect 连接并初始化一个 mcp 服务，url 以 /sse 结尾时使用 sse，否则使用 streamable http
func Connect(ctx context.Context, config *einos.McpConfig) (*client.Client, error) {
	headers := make(map[string]string)
	if config.Token != "" {
		headers["Authorization"] = fmt.Sprintf("Bearer %s", config.Token)
	}
	url := config.BaseUrl
	var cli *client.Client
	var err error
	if strings.HasSuffix(url, "/sse") {
		cli, err = client.NewSSEMCPClient(url, transport.WithHeaders(headers))
	} else {
		cli, err = client.NewStreamableHttpClient(url, transport.WithHTTPHeaders(headers))
	}
	if err != nil {
		return nil, err
	}
	if err = cli.Start(ctx); err != nil {
		_ = cli.Close()
		return nil, err
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    config.Name,
		Version: config.Version,
	}
	if _, err = cli.Initialize(ctx, initRequest); err != nil {
		_ = cli.Close()
		return nil, err
	}
	return cli, nil
}

// ListTools 获取服务端暴露的工具
func ListTools(ctx context.Context, cli *client.Client) ([]mcp.Tool, error) {
	tools, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return tools.Tools, nil
}

// CallText 调用工具并拼接返回的文本内容
func CallText(ctx context.Context, cli *client.Client, name string, args map[string]any) (string, bool, error) {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	result, err := cli.CallTool(ctx, request)
	if err != nil {
		return "", false, err
	}
	var b strings.Builder
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String(), result.IsError, nil
}
