package main

import (
	"github.com/ShabuddinKhan/jenkins-mcp-server/cmd"
)

// 以下变量在构建时通过 -ldflags 注入
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, gitCommit, buildTime)
}
