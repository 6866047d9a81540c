package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"devops-mcp/common/biz"
	"devops-mcp/common/logger"
	"devops-mcp/core/workitems"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

const WorkItemToolName = "get_work_item_by_id"

// TrackerFactory 按 organization 创建已认证的跟踪服务客户端
type TrackerFactory func(organization string) (workitems.Tracker, error)

type WorkItemConfig struct {
	Trackers TrackerFactory
	Logger   logger.Logger
}

// WorkItemTool Azure DevOps 工作项查询工具
type WorkItemTool struct {
	trackers TrackerFactory
	log      logger.Logger
}

func NewWorkItemTool(c *WorkItemConfig) *WorkItemTool {
	if c == nil || c.Trackers == nil {
		panic("WorkItemConfig is nil")
	}
	return &WorkItemTool{trackers: c.Trackers, log: logger.OrDefault(c.Logger)}
}

func (w *WorkItemTool) Params() map[string]*schema.ParameterInfo {
	return map[string]*schema.ParameterInfo{
		"orgName": {
			Desc:     "Azure DevOps organization name, e.g. my_org_name",
			Type:     schema.String,
			Required: true,
		},
		"workItemSearchString": {
			Desc:     "Work Item ID, - Title or -Description",
			Type:     schema.String,
			Required: true,
		},
		"fullHistory": {
			Desc: "Retrieve full history",
			Type: schema.Boolean,
		},
	}
}

func (w *WorkItemTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        WorkItemToolName,
		Desc:        "Reads a work item from Azure DevOps using a PAT.",
		ParamsOneOf: schema.NewParamsOneOfByParams(w.Params()),
	}, nil
}

type workItemArgs struct {
	OrgName              string  `json:"orgName"`
	WorkItemSearchString *string `json:"workItemSearchString"`
	FullHistory          bool    `json:"fullHistory"`
}

// InvokableRun 参数错误返回 error，查询过程中的失败都以文本形式返回
func (w *WorkItemTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var args workItemArgs
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return "", fmt.Errorf("%w: %v", biz.ErrInvalidArguments, err)
	}
	org := strings.TrimSpace(args.OrgName)
	if org == "" {
		return "", biz.ErrOrgNameRequired
	}
	if args.WorkItemSearchString == nil {
		return "", biz.ErrSearchStringRequired
	}
	tracker, err := w.trackers(org)
	if err != nil {
		w.log.Errorf("create tracker for organization %s error: %v", org, err)
		return workitems.ErrorText(err), nil
	}
	return workitems.NewLookup(tracker, w.log).Lookup(ctx, *args.WorkItemSearchString, args.FullHistory), nil
}
