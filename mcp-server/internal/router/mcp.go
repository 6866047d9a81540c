package router

import (
	"devops-mcp/common/logger"
	"devops-mcp/mcp-server/internal/conf"
	"devops-mcp/mcp-server/internal/tool"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
)

type McpRouter struct {
	Conf  conf.McpConfig
	Tools []tool.MCPTool
	Log   logger.Logger
}

func (u *McpRouter) Register(engine *gin.Engine) {
	mcpServer := NewMCPServer(u.Conf, u.Tools, u.Log)
	//sse 需要两个 /sse， /message
	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(u.Conf.BaseURL),
		server.WithSSEEndpoint(u.Conf.SSEPath),
		server.WithMessageEndpoint(u.Conf.MessagePath),
		server.WithKeepAlive(true),
	)
	engine.GET(u.Conf.SSEPath, gin.WrapH(sseServer.SSEHandler()))
	engine.POST(u.Conf.MessagePath, gin.WrapH(sseServer.MessageHandler()))
	//streamable http 一个端点处理 GET/POST/DELETE
	streamServer := server.NewStreamableHTTPServer(
		mcpServer,
		server.WithEndpointPath(u.Conf.StreamPath),
	)
	engine.Any(u.Conf.StreamPath, gin.WrapH(streamServer))
}

func NewMCPServer(c conf.McpConfig, tools []tool.MCPTool, log logger.Logger) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		c.Name,
		c.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(tool.CallLogger(log)),
	)
	for _, t := range tools {
		mcpServer.AddTool(t.Build(), t.Invoke)
	}
	return mcpServer
}
