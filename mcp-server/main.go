package main

import (
	"fmt"
	"os"

	"devops-mcp/mcp-server/internal/inits"

	"github.com/mszlu521/thunder/config"
	"github.com/mszlu521/thunder/logs"
	"github.com/mszlu521/thunder/server"
)

func main() {
	fmt.Fprintln(os.Stderr, "Starting MCP server...")
	//加载etc/config.yml中的配置
	config.Init()
	conf := config.GetConfig()
	//初始化日志
	logs.Init(conf.Log)
	//初始化Gin服务
	s := server.NewServer(conf)
	//读取PAT，注册mcp工具和路由
	if err := inits.Init(s, conf); err != nil {
		logs.Errorf("init mcp server error: %v", err)
		fmt.Fprintf(os.Stderr, "init mcp server error: %v\n", err)
		os.Exit(1)
	}
	//启动服务
	s.Start()
}
