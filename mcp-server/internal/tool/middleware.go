package tool

import (
	"context"
	"time"

	"devops-mcp/common/logger"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CallLogger 每次工具调用分配一个 call id，记录耗时与结果
func CallLogger(log logger.Logger) server.ToolHandlerMiddleware {
	log = logger.OrDefault(log)
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			callID := uuid.NewString()
			start := time.Now()
			log.Infof("[%s] call tool %s", callID, request.Params.Name)
			result, err := next(ctx, request)
			elapsed := time.Since(start)
			switch {
			case err != nil:
				log.Errorf("[%s] tool %s failed after %s: %v", callID, request.Params.Name, elapsed, err)
			case result != nil && result.IsError:
				log.Warnf("[%s] tool %s returned error result after %s", callID, request.Params.Name, elapsed)
			default:
				log.Infof("[%s] tool %s done in %s", callID, request.Params.Name, elapsed)
			}
			return result, err
		}
	}
}
