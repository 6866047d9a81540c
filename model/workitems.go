package model

import "strings"

// Azure DevOps 工作项字段的引用名
const (
	FieldID          = "System.Id"
	FieldTitle       = "System.Title"
	FieldDescription = "System.Description"
	FieldState       = "System.State"
	FieldType        = "System.WorkItemType"
	FieldChangedDate = "System.ChangedDate"
	FieldChangedBy   = "System.ChangedBy"
	FieldHistory     = "System.History"
)

// WorkItem 拉取时刻的工作项快照
type WorkItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	State string `json:"state"`
	Type  string `json:"type"`
}

// Revision 工作项的一次历史修订
type Revision struct {
	Rev         int    `json:"rev"`
	ChangedDate string `json:"changedDate"`
	ChangedBy   string `json:"changedBy"`
	History     string `json:"history"`
}

// HasHistory 空白的历史备注不参与展示
func (r Revision) HasHistory() bool {
	return strings.TrimSpace(r.History) != ""
}
