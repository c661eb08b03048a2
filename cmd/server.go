package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/config"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/database"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/imcp"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/server"
	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/service"
)

// serverCmd 启动服务
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动 HTTP 与 MCP 服务",
	Long:  `启动基于 Gin 的 HTTP 服务,并按配置启动 MCP (Streamable HTTP) 服务。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 注入数据库配置加载/迁移钩子后重新加载配置
		configService := service.NewConfigService()
		config.SetDBLoader(configService.LoadJenkinsConfig)
		config.SetDBMigrator(configService.MigrateJenkinsConfig)

		var err error
		cfg, err = config.LoadConfigWithDB(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		server.InitVersionHandler(buildVersion, buildGitCommit, buildTimestamp)

		logService := service.NewToolCallLogService()

		// MCP 服务
		mcpServer := imcp.NewMCPServer(cfg, buildVersion)
		mcpServer.SetLogService(logService)

		// HTTP 服务
		httpServer := server.NewHTTPGinServer(cfg)
		httpServer.SetLogService(logService)

		errCh := make(chan error, 2)

		if cfg.Server.HTTP.Enabled {
			go func() {
				if err := httpServer.Start(); err != nil {
					errCh <- fmt.Errorf("http server error: %w", err)
				}
			}()
		}

		if cfg.Server.MCP.Enabled {
			go func() {
				if err := mcpServer.Start(); err != nil {
					errCh <- fmt.Errorf("mcp server error: %w", err)
				}
			}()
		}

		// 等待退出信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			logx.Error("Server exited with error: %v", err)
			return err
		case sig := <-quit:
			logx.Info("Received signal %s, shutting down...", sig)
		}

		// 优雅退出
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Stop(ctx); err != nil {
			logx.Warn("Failed to stop HTTP server gracefully: %v", err)
		}
		if err := mcpServer.Stop(ctx); err != nil {
			logx.Warn("Failed to stop MCP server gracefully: %v", err)
		}
		if err := database.Close(); err != nil {
			logx.Warn("Failed to close database: %v", err)
		}

		logx.Info("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
