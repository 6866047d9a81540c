package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"devops-mcp/common/biz"
	"devops-mcp/common/logger"
	"devops-mcp/core/jokes"
	"devops-mcp/core/workitems"
	"devops-mcp/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTracker struct {
	item *model.WorkItem
}

func (s stubTracker) GetWorkItem(context.Context, int) (*model.WorkItem, error) { return s.item, nil }
func (s stubTracker) GetRevisions(context.Context, int) ([]model.Revision, error) {
	return []model.Revision{{ChangedDate: "2024-05-01", ChangedBy: "Ada", History: "triaged"}}, nil
}
func (s stubTracker) QueryByText(context.Context, string) ([]int, error) { return nil, nil }

func newWorkItemTool(t *testing.T, orgs *[]string) *WorkItemTool {
	t.Helper()
	return NewWorkItemTool(&WorkItemConfig{
		Trackers: func(org string) (workitems.Tracker, error) {
			*orgs = append(*orgs, org)
			if org == "broken" {
				return nil, errors.New("devops: personal access token is required")
			}
			return stubTracker{item: &model.WorkItem{ID: 7, Title: "Fix crash", Type: "Bug", State: "Active"}}, nil
		},
		Logger: logger.Nop{},
	})
}

func TestWorkItemTool_Info(t *testing.T) {
	var orgs []string
	w := newWorkItemTool(t, &orgs)
	info, err := w.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, WorkItemToolName, info.Name)
	params := w.Params()
	assert.True(t, params["orgName"].Required)
	assert.True(t, params["workItemSearchString"].Required)
	assert.False(t, params["fullHistory"].Required)
}

func TestWorkItemTool_InvokableRun(t *testing.T) {
	var orgs []string
	w := newWorkItemTool(t, &orgs)

	got, err := w.InvokableRun(context.Background(), `{"orgName":" contoso ","workItemSearchString":"7"}`)
	require.NoError(t, err)
	assert.Equal(t, "Work Item 7: 'Fix crash' (Type: Bug, State: Active)", got)

	got, err = w.InvokableRun(context.Background(), `{"orgName":"contoso","workItemSearchString":"7","fullHistory":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Work Item 7: 'Fix crash' (Type: Bug, State: Active)\nHistory:\n[2024-05-01] Ada: triaged", got)

	got, err = w.InvokableRun(context.Background(), `{"orgName":"contoso","workItemSearchString":"crash"}`)
	require.NoError(t, err)
	assert.Equal(t, "No work item found with title or description containing 'crash'", got)

	assert.Equal(t, []string{"contoso", "contoso", "contoso"}, orgs)
}

func TestWorkItemTool_ArgumentErrors(t *testing.T) {
	var orgs []string
	w := newWorkItemTool(t, &orgs)

	_, err := w.InvokableRun(context.Background(), `{"workItemSearchString":"7"}`)
	assert.Equal(t, biz.ErrOrgNameRequired, err)

	_, err = w.InvokableRun(context.Background(), `{"orgName":"contoso"}`)
	assert.Equal(t, biz.ErrSearchStringRequired, err)

	_, err = w.InvokableRun(context.Background(), `not json`)
	assert.Error(t, err)
	assert.Empty(t, orgs)
}

func TestWorkItemTool_TrackerFailureIsText(t *testing.T) {
	var orgs []string
	w := newWorkItemTool(t, &orgs)
	got, err := w.InvokableRun(context.Background(), `{"orgName":"broken","workItemSearchString":"7"}`)
	require.NoError(t, err)
	assert.Equal(t, "Error retrieving work item: devops: personal access token is required", got)
}

func newJokeTool(t *testing.T, status int, body string) *JokeTool {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewJokeTool(jokes.NewClient(&jokes.Config{URL: srv.URL}), logger.Nop{})
}

func TestJokeTool_InvokableRun(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"joke", http.StatusOK, `{"value":"Chuck Norris can divide by zero."}`, "Chuck Norris can divide by zero."},
		{"missing value", http.StatusOK, `{}`, "No joke received from API."},
		{"null value", http.StatusOK, `{"value":null}`, "No joke received from API."},
		{"empty value", http.StatusOK, `{"value":""}`, ""},
		{"server error", http.StatusInternalServerError, ``, "Error fetching joke: http request failed with status code 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newJokeTool(t, tt.status, tt.body).InvokableRun(context.Background(), "{}")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Find(t *testing.T) {
	var orgs []string
	r := NewRegistry(newWorkItemTool(t, &orgs), NewJokeTool(nil, logger.Nop{}))
	assert.Len(t, r.Tools(), 2)
	assert.NotNil(t, r.Find(WorkItemToolName))
	assert.NotNil(t, r.Find(JokeToolName))
	assert.Nil(t, r.Find("get_weather"))
}
