package router

import (
	"context"

	"devops-mcp/common/biz"
	"devops-mcp/common/logger"
	"devops-mcp/core/ai/tools"

	"github.com/mszlu521/thunder/errs"
	"github.com/mszlu521/thunder/event"
)

const (
	EventListTools = "listTools"
	EventCallTool  = "callTool"
)

// CallToolRequest callTool 事件的参数
type CallToolRequest struct {
	Name      string
	Arguments string
}

// Event 进程内事件，其它模块不经过 mcp 协议直接调用已注册的工具
type Event struct {
	Registry *tools.Registry
	Log      logger.Logger
}

func (u *Event) Register() {
	log := logger.OrDefault(u.Log)
	event.Register(EventListTools, u.ListTools)
	event.Register(EventCallTool, u.CallTool)
	names, _ := u.ListTools(event.Event{Name: EventListTools})
	log.Infof("events registered, tools: %v", names)
}

// ListTools 返回已注册工具的名称，按注册顺序
func (u *Event) ListTools(_ event.Event) (any, error) {
	var names []string
	for _, t := range u.Registry.Tools() {
		info, err := t.Info(context.Background())
		if err != nil {
			return nil, err
		}
		names = append(names, info.Name)
	}
	return names, nil
}

func (u *Event) CallTool(e event.Event) (any, error) {
	request, ok := e.Data.(*CallToolRequest)
	if !ok || request == nil {
		return nil, errs.ErrParam
	}
	t := u.Registry.Find(request.Name)
	if t == nil {
		return nil, biz.ErrToolNotExisted
	}
	arguments := request.Arguments
	if arguments == "" {
		arguments = "{}"
	}
	return t.InvokableRun(context.Background(), arguments)
}
