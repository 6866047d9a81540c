package tool

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/cloudwego/eino/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mszlu521/thunder/ai/einos"
)

// InvokeTool 把 eino 的 InvokeParamTool 包装成 mcp tool
type InvokeTool struct {
	tool einos.InvokeParamTool
}

func NewInvokeTool(t einos.InvokeParamTool) *InvokeTool {
	if t == nil {
		panic("InvokeParamTool is nil")
	}
	return &InvokeTool{tool: t}
}

func (w *InvokeTool) Build() mcp.Tool {
	//转换为mcp tool
	info, _ := w.tool.Info(context.Background())
	options := ToMCPOptions(w.tool.Params(), info.Desc)
	return mcp.NewTool(info.Name, options...)
}

func ToMCPOptions(params map[string]*schema.ParameterInfo, desc string) []mcp.ToolOption {
	//先处理描述
	var options []mcp.ToolOption
	options = append(options, mcp.WithDescription(desc))
	//参数按名称排序，保证 tools/list 输出稳定
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := params[k]
		var propertyOptions []mcp.PropertyOption
		if v.Required {
			propertyOptions = append(propertyOptions, mcp.Required())
		}
		propertyOptions = append(propertyOptions, mcp.Description(v.Desc))
		if len(v.Enum) > 0 {
			propertyOptions = append(propertyOptions, mcp.Enum(v.Enum...))
		}
		switch v.Type {
		case schema.String:
			options = append(options, mcp.WithString(k, propertyOptions...))
		case schema.Number, schema.Integer:
			options = append(options, mcp.WithNumber(k, propertyOptions...))
		case schema.Boolean:
			options = append(options, mcp.WithBoolean(k, propertyOptions...))
		case schema.Array:
			options = append(options, mcp.WithArray(k, propertyOptions...))
		case schema.Object:
			options = append(options, mcp.WithObject(k, propertyOptions...))
		}
	}
	return options
}

// Invoke 工具返回的 error 转换成 isError 结果，不作为协议错误返回
func (w *InvokeTool) Invoke(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params, err := json.Marshal(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := w.tool.InvokableRun(ctx, string(params))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}
