package tools

import (
	"context"

	"github.com/mszlu521/thunder/ai/einos"
)

// Registry 系统工具注册表
type Registry struct {
	tools []einos.InvokeParamTool
}

func NewRegistry(inputs ...einos.InvokeParamTool) *Registry {
	var tools []einos.InvokeParamTool
	tools = append(tools, inputs...)
	return &Registry{tools: tools}
}

// Find 根据工具名称获取工具，不存在返回 nil
func (r *Registry) Find(toolName string) einos.InvokeParamTool {
	for _, t := range r.tools {
		info, err := t.Info(context.Background())
		if err != nil {
			continue
		}
		if info.Name == toolName {
			return t
		}
	}
	return nil
}

// Tools 按注册顺序返回所有工具
func (r *Registry) Tools() []einos.InvokeParamTool {
	return r.tools
}
