package workitems

import (
	"fmt"
	"strings"

	"devops-mcp/model"
)

const (
	NoWorkItemFound    = "No work item found."
	NoHistoryAvailable = "No history available."
)

// NotFoundText 文本搜索无结果，回显原始（未 trim）的输入
func NotFoundText(searchToken string) string {
	return fmt.Sprintf("No work item found with title or description containing '%s'", searchToken)
}

func ErrorText(err error) string {
	return "Error retrieving work item: " + oneLine(err.Error())
}

// Summary 单行摘要
func Summary(item *model.WorkItem) string {
	return fmt.Sprintf("Work Item %d: '%s' (Type: %s, State: %s)", item.ID, item.Title, item.Type, item.State)
}

// History 过滤掉空白备注，全部为空时返回 NoHistoryAvailable
func History(revisions []model.Revision) string {
	var lines []string
	for _, rev := range revisions {
		if !rev.HasHistory() {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", rev.ChangedDate, rev.ChangedBy, rev.History))
	}
	if len(lines) == 0 {
		return NoHistoryAvailable
	}
	return strings.Join(lines, "\n")
}

func render(r fetchResult, errorPrefix string) string {
	switch {
	case r.err != nil:
		return errorPrefix + oneLine(r.err.Error())
	case r.item == nil:
		return ""
	case r.history:
		return Summary(r.item) + "\nHistory:\n" + History(r.revisions)
	default:
		return Summary(r.item)
	}
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// oneLine 错误信息必须占一行
func oneLine(s string) string {
	return newlines.Replace(s)
}
