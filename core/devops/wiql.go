package devops

import (
	"fmt"
	"regexp"
	"strings"

	"devops-mcp/model"
)

// Operator WIQL 比较运算符
type Operator string

const (
	OpEquals   Operator = "="
	OpContains Operator = "CONTAINS"
)

// Condition 一个字段条件，Value 永远作为字符串字面量渲染
type Condition struct {
	Field    string
	Operator Operator
	Value    string
}

func Contains(field, value string) Condition {
	return Condition{Field: field, Operator: OpContains, Value: value}
}

func Equals(field, value string) Condition {
	return Condition{Field: field, Operator: OpEquals, Value: value}
}

// Query 参数化的 WIQL 查询，Any 中的条件以 OR 连接
type Query struct {
	Fields []string
	Any    []Condition
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)

// TextQuery 标题或描述包含 text 的工作项
func TextQuery(text string) Query {
	return Query{
		Fields: []string{model.FieldID, model.FieldTitle, model.FieldDescription},
		Any: []Condition{
			Contains(model.FieldTitle, text),
			Contains(model.FieldDescription, text),
		},
	}
}

// Build 渲染 WIQL 文本，字段名必须是合法的引用名，值中的单引号会被转义
func (q Query) Build() (string, error) {
	if len(q.Fields) == 0 {
		return "", fmt.Errorf("wiql: no fields selected")
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, field := range q.Fields {
		if !fieldPattern.MatchString(field) {
			return "", fmt.Errorf("wiql: invalid field reference %q", field)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[" + field + "]")
	}
	b.WriteString(" FROM WorkItems")
	for i, cond := range q.Any {
		if !fieldPattern.MatchString(cond.Field) {
			return "", fmt.Errorf("wiql: invalid field reference %q", cond.Field)
		}
		switch cond.Operator {
		case OpEquals, OpContains:
		default:
			return "", fmt.Errorf("wiql: unsupported operator %q", cond.Operator)
		}
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" OR ")
		}
		fmt.Fprintf(&b, "[%s] %s %s", cond.Field, cond.Operator, quote(cond.Value))
	}
	return b.String(), nil
}

// quote WIQL 字符串字面量中单引号用两个单引号转义
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
