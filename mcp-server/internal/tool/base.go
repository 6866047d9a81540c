package tool

import (
	"context"

	"devops-mcp/core/ai/tools"

	"github.com/mark3labs/mcp-go/mcp"
)

type MCPTool interface {
	Build() mcp.Tool
	Invoke(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// FromRegistry 注册表中的每个系统工具都暴露为 mcp tool
func FromRegistry(registry *tools.Registry) []MCPTool {
	var list []MCPTool
	for _, t := range registry.Tools() {
		list = append(list, NewInvokeTool(t))
	}
	return list
}
