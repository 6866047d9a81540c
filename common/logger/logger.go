package logger

import "github.com/mszlu521/thunder/logs"

// Logger 业务代码依赖的日志接口，默认转发到 thunder/logs
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type thunderLogger struct{}

func (thunderLogger) Infof(format string, args ...any)  { logs.Infof(format, args...) }
func (thunderLogger) Warnf(format string, args ...any)  { logs.Warnf(format, args...) }
func (thunderLogger) Errorf(format string, args ...any) { logs.Errorf(format, args...) }

// Thunder 需要先在 main 中调用 logs.Init
var Thunder Logger = thunderLogger{}

// Nop 丢弃所有日志，测试使用
type Nop struct{}

func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

// OrDefault nil 时回退到 Thunder
func OrDefault(l Logger) Logger {
	if l == nil {
		return Thunder
	}
	return l
}
