package tool

import (
	"context"
	"errors"
	"testing"

	"devops-mcp/common/logger"
	"devops-mcp/core/ai/tools"
	"devops-mcp/core/workitems"
	"devops-mcp/model"

	"github.com/cloudwego/eino/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTracker struct{}

func (fixedTracker) GetWorkItem(_ context.Context, id int) (*model.WorkItem, error) {
	if id != 7 {
		return nil, errors.New("devops: HTTP 404: TF401232: Work item does not exist")
	}
	return &model.WorkItem{ID: 7, Title: "Fix crash", Type: "Bug", State: "Active"}, nil
}
func (fixedTracker) GetRevisions(context.Context, int) ([]model.Revision, error) { return nil, nil }
func (fixedTracker) QueryByText(context.Context, string) ([]int, error)         { return nil, nil }

func workItemTool() *InvokeTool {
	return NewInvokeTool(tools.NewWorkItemTool(&tools.WorkItemConfig{
		Trackers: func(string) (workitems.Tracker, error) { return fixedTracker{}, nil },
		Logger:   logger.Nop{},
	}))
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestInvokeTool_Build(t *testing.T) {
	built := workItemTool().Build()
	assert.Equal(t, tools.WorkItemToolName, built.Name)
	assert.Equal(t, "Reads a work item from Azure DevOps using a PAT.", built.Description)
	assert.ElementsMatch(t, []string{"orgName", "workItemSearchString"}, built.InputSchema.Required)
	assert.Contains(t, built.InputSchema.Properties, "fullHistory")
	assert.Len(t, built.InputSchema.Properties, 3)
}

func TestToMCPOptions_Types(t *testing.T) {
	params := map[string]*schema.ParameterInfo{
		"count": {Type: schema.Integer, Desc: "how many"},
		"kind":  {Type: schema.String, Desc: "kind", Enum: []string{"a", "b"}, Required: true},
		"flag":  {Type: schema.Boolean},
	}
	built := mcp.NewTool("demo", ToMCPOptions(params, "demo tool")...)
	assert.Equal(t, "demo tool", built.Description)
	assert.Equal(t, []string{"kind"}, built.InputSchema.Required)
	count, ok := built.InputSchema.Properties["count"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", count["type"])
	kind, ok := built.InputSchema.Properties["kind"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, kind["enum"])
}

func TestInvokeTool_Invoke(t *testing.T) {
	result, err := workItemTool().Invoke(context.Background(), callRequest(tools.WorkItemToolName, map[string]any{
		"orgName":              "contoso",
		"workItemSearchString": " 7 ",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Work Item 7: 'Fix crash' (Type: Bug, State: Active)", resultText(t, result))

	result, err = workItemTool().Invoke(context.Background(), callRequest(tools.WorkItemToolName, map[string]any{
		"orgName":              "contoso",
		"workItemSearchString": "8",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Error retrieving work item by ID: devops: HTTP 404: TF401232: Work item does not exist", resultText(t, result))
}

func TestInvokeTool_ArgumentErrorIsToolError(t *testing.T) {
	result, err := workItemTool().Invoke(context.Background(), callRequest(tools.WorkItemToolName, map[string]any{
		"workItemSearchString": "7",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestCallLogger(t *testing.T) {
	calls := 0
	handler := CallLogger(logger.Nop{})(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		calls++
		return mcp.NewToolResultText("ok"), nil
	})
	result, err := handler(context.Background(), callRequest("x", nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", resultText(t, result))
	assert.Equal(t, 1, calls)
}

func TestFromRegistry(t *testing.T) {
	registry := tools.NewRegistry(tools.NewJokeTool(nil, logger.Nop{}))
	list := FromRegistry(registry)
	require.Len(t, list, 1)
	assert.Equal(t, tools.JokeToolName, list[0].Build().Name)
}
