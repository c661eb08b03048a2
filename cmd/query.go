package cmd

import (
	"github.com/spf13/cobra"
)

// queryCmd 查询命令组
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "查询 CI/CD 信息",
	Long:  `查询 CI/CD 工具的任务与构建信息。`,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
