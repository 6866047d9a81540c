package workitems

import (
	"context"
	"strconv"
	"strings"

	"devops-mcp/common/logger"
	"devops-mcp/core/devops"
	"devops-mcp/model"
)

// Tracker 工作项跟踪服务，devops.Client 实现了它
type Tracker interface {
	GetWorkItem(ctx context.Context, id int) (*model.WorkItem, error)
	GetRevisions(ctx context.Context, id int) ([]model.Revision, error)
	QueryByText(ctx context.Context, text string) ([]int, error)
}

// Lookup 根据 id 或标题/描述文本查询工作项，并渲染成文本
type Lookup struct {
	tracker Tracker
	log     logger.Logger
}

// NewLookup log 为 nil 时使用 thunder 日志
func NewLookup(tracker Tracker, log logger.Logger) *Lookup {
	return &Lookup{tracker: tracker, log: logger.OrDefault(log)}
}

// fetchResult 单个工作项的拉取结果，item 与 err 二选一
type fetchResult struct {
	id        int
	item      *model.WorkItem
	revisions []model.Revision
	history   bool
	err       error
}

// Lookup 不返回错误，所有失败都转换成描述文本
func (l *Lookup) Lookup(ctx context.Context, searchToken string, includeHistory bool) string {
	trimmed := strings.TrimSpace(searchToken)
	var blocks []string
	if id, ok := parseID(trimmed); ok {
		blocks = appendBlock(blocks, render(l.fetch(ctx, id, includeHistory), "Error retrieving work item by ID: "))
	} else {
		ids, err := l.tracker.QueryByText(ctx, trimmed)
		if err != nil {
			l.log.Errorf("query work items by text %q failed, kind=%s: %v", trimmed, devops.KindOf(err), err)
			return ErrorText(err)
		}
		if len(ids) == 0 {
			return NotFoundText(searchToken)
		}
		//按服务端返回顺序逐个拉取，单个失败不影响其它
		for _, id := range ids {
			blocks = appendBlock(blocks, render(l.fetch(ctx, id, includeHistory), "Error retrieving work item "+strconv.Itoa(id)+": "))
		}
	}
	if len(blocks) == 0 {
		return NoWorkItemFound
	}
	return strings.Join(blocks, "\n")
}

// appendBlock 空白块不输出，避免结果中出现空行
func appendBlock(blocks []string, block string) []string {
	if strings.TrimSpace(block) == "" {
		return blocks
	}
	return append(blocks, block)
}

func (l *Lookup) fetch(ctx context.Context, id int, includeHistory bool) fetchResult {
	r := fetchResult{id: id, history: includeHistory}
	item, err := l.tracker.GetWorkItem(ctx, id)
	if err != nil {
		l.log.Warnf("get work item %d failed, kind=%s: %v", id, devops.KindOf(err), err)
		r.err = err
		return r
	}
	r.item = item
	if !includeHistory {
		return r
	}
	revisions, err := l.tracker.GetRevisions(ctx, id)
	if err != nil {
		l.log.Warnf("get revisions of work item %d failed, kind=%s: %v", id, devops.KindOf(err), err)
		r.item = nil
		r.err = err
		return r
	}
	r.revisions = revisions
	return r
}

// parseID 与 32 位有符号整数范围一致
func parseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(id), true
}
