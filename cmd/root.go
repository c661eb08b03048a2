package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/config"
	// 注册 Jenkins Provider
	_ "github.com/ShabuddinKhan/jenkins-mcp-server/internal/provider/jenkins"
)

var (
	cfgFile string
	cfg     *config.Config

	// 构建信息,由 main 注入
	buildVersion   = "dev"
	buildGitCommit = "unknown"
	buildTimestamp = "unknown"
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "jenkins-mcp-server",
	Short: "Jenkins 任务查询服务",
	Long:  `通过 HTTP 触发器和 MCP 工具查询 Jenkins 的 Job 与 Build 信息。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute 执行根命令
func Execute(version, gitCommit, buildTime string) {
	buildVersion = version
	buildGitCommit = gitCommit
	buildTimestamp = buildTime

	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径")
}
